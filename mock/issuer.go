package mock

import (
	"context"
	"time"

	"github.com/poly-workshop/studiochat/credential"
)

// Interface compliance check.
var _ credential.Issuer = (*Issuer)(nil)

// Issuer is a test double for credential.Issuer.
// Set IssueFn before calling Issue.
type Issuer struct {
	IssueFn func(ctx context.Context) (time.Time, error)
}

// Issue delegates to IssueFn.
func (i *Issuer) Issue(ctx context.Context) (time.Time, error) {
	return i.IssueFn(ctx)
}
