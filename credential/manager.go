package credential

import (
	"context"
	"time"
)

// Issuer mints a gateway credential. A successful call sets the credential
// cookie as a response side effect and returns only its expiry. The bff
// package provides the real implementation.
type Issuer interface {
	Issue(ctx context.Context) (time.Time, error)
}

// Manager combines a Store and an Issuer into the ensure-fresh protocol used
// before every gateway call. All writers perform the same issue-then-set
// sequence, so concurrent refreshes are safe under last-write-wins.
type Manager struct {
	store  *Store
	issuer Issuer
	skew   time.Duration
}

// NewManager creates a Manager with the on-demand freshness skew.
func NewManager(store *Store, issuer Issuer) *Manager {
	return &Manager{store: store, issuer: issuer, skew: OnDemandSkew}
}

// Store returns the underlying store.
func (m *Manager) Store() *Store { return m.store }

// Ensure reissues the credential if the recorded expiry is missing or within
// the on-demand skew of now. A no-op when the credential is fresh.
func (m *Manager) Ensure(ctx context.Context) error {
	if m.store.Fresh(m.skew) {
		return nil
	}
	return m.reissue(ctx)
}

// ForceReissue discards the recorded expiry and mints a new credential.
// Called after the gateway rejects a first attempt with 401.
func (m *Manager) ForceReissue(ctx context.Context) error {
	m.store.Invalidate()
	return m.reissue(ctx)
}

func (m *Manager) reissue(ctx context.Context) error {
	exp, err := m.issuer.Issue(ctx)
	if err != nil {
		return err
	}
	m.store.Set(exp)
	return nil
}
