package credential

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultRenewInterval is how often the background loop checks freshness.
const DefaultRenewInterval = 60 * time.Second

// Renewer proactively renews the credential well before expiry so that an
// idle session does not hit a mid-stream auth failure. Renewal failures are
// logged and swallowed: the on-demand path in the gateway client is the
// authoritative fallback.
type Renewer struct {
	store    *Store
	issuer   Issuer
	interval time.Duration
	skew     time.Duration
	logger   *zap.Logger
}

// NewRenewer creates a Renewer with the proactive skew and default interval.
func NewRenewer(store *Store, issuer Issuer, logger *zap.Logger) *Renewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renewer{
		store:    store,
		issuer:   issuer,
		interval: DefaultRenewInterval,
		skew:     ProactiveSkew,
		logger:   logger,
	}
}

// Run blocks, renewing on each tick until ctx is cancelled. It always
// returns nil on cancellation so teardown is not reported as a failure.
func (r *Renewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.renewOnce(ctx)
		}
	}
}

// renewOnce performs one tick: reissue if the credential is inside the
// proactive skew window.
func (r *Renewer) renewOnce(ctx context.Context) {
	if r.store.Fresh(r.skew) {
		return
	}
	exp, err := r.issuer.Issue(ctx)
	if err != nil {
		r.logger.Warn("background credential renewal failed", zap.Error(err))
		return
	}
	r.store.Set(exp)
	r.logger.Debug("credential renewed", zap.Time("expires_at", exp))
}
