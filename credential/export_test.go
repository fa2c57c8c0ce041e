package credential

import (
	"context"
	"time"
)

// SetNow overrides the store's clock for testing.
func SetNow(s *Store, now func() time.Time) {
	s.now = now
}

// RenewOnce exports renewOnce for testing.
func RenewOnce(r *Renewer, ctx context.Context) {
	r.renewOnce(ctx)
}

// SetInterval overrides the renewer's tick interval for testing.
func SetInterval(r *Renewer, d time.Duration) {
	r.interval = d
}
