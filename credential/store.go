// Package credential tracks the lifetime of the short-lived gateway
// credential issued by the BFF. The credential itself travels as an HttpOnly
// cookie managed by the HTTP cookie jar; this package only ever sees its
// expiry instant.
package credential

import (
	"sync"
	"time"
)

// Skews used when deciding whether the credential needs reissuing. The
// on-demand check runs immediately before a gateway call; the proactive
// check runs in the background renewal loop and is deliberately wider so
// user-initiated requests rarely hit the retry path.
const (
	OnDemandSkew  = 300 * time.Second
	ProactiveSkew = 600 * time.Second
)

// Store holds the expiry of the current gateway credential. No I/O, no
// failure modes. A failed issuance leaves the prior value in place: it is
// almost certainly stale, which biases toward reissuance on next use.
type Store struct {
	mu        sync.Mutex
	expiresAt time.Time
	set       bool

	now func() time.Time // test hook
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Get returns the recorded expiry and whether one has been set.
func (s *Store) Get() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt, s.set
}

// Set records the expiry of a freshly issued credential.
func (s *Store) Set(expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = expiresAt
	s.set = true
}

// Invalidate marks the credential stale, forcing the next freshness check to
// fail. Used when the gateway rejects a request despite a recorded expiry.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Time{}
	s.set = false
}

// Fresh reports whether an expiry is recorded and lies more than skew in the
// future.
func (s *Store) Fresh(skew time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set && s.expiresAt.After(s.now().Add(skew))
}
