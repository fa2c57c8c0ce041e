package bff

import (
	"context"
	"sync"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/credential"
)

// UserSession is the explicitly constructed session context passed to
// components that need the current user. Refresh fetches the latest snapshot;
// Current returns the last one without I/O. Logout ends the BFF session and
// clears both the snapshot and the recorded credential expiry.
type UserSession struct {
	client *Client
	creds  *credential.Store

	mu      sync.Mutex
	current *studiochat.Me
}

// NewUserSession creates a UserSession backed by the given client. creds may
// be nil when no credential store should be cleared on logout.
func NewUserSession(client *Client, creds *credential.Store) *UserSession {
	return &UserSession{client: client, creds: creds}
}

// Refresh fetches the current-user snapshot from the BFF and caches it.
func (s *UserSession) Refresh(ctx context.Context) (studiochat.Me, error) {
	me, err := s.client.Me(ctx)
	if err != nil {
		return studiochat.Me{}, err
	}
	s.mu.Lock()
	s.current = &me
	s.mu.Unlock()
	return me, nil
}

// Current returns the last fetched snapshot, if any.
func (s *UserSession) Current() (studiochat.Me, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return studiochat.Me{}, false
	}
	return *s.current, true
}

// Logout ends the BFF session and resets local session state.
func (s *UserSession) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if s.creds != nil {
		s.creds.Invalidate()
	}
	return err
}
