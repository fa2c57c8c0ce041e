// Package chat orchestrates streaming chat turns against a gateway,
// appending results to a transcript.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	studiochat "github.com/poly-workshop/studiochat"
)

// Session drives one conversation. A turn submits the prior transcript plus
// a new user message and streams the assistant reply into the transcript.
// Turns are serialized: at most one completion is in flight per session.
type Session struct {
	gw         studiochat.Gateway
	transcript *studiochat.Transcript
	catalog    atomic.Pointer[map[string]struct{}]
	inFlight   atomic.Bool
}

// NewSession creates a Session writing to the given transcript.
func NewSession(gw studiochat.Gateway, transcript *studiochat.Transcript) *Session {
	return &Session{gw: gw, transcript: transcript}
}

// Transcript returns the session's transcript.
func (s *Session) Transcript() *studiochat.Transcript { return s.transcript }

// SetCatalog records the set of model IDs a turn may target, from the
// gateway's model listing.
func (s *Session) SetCatalog(models []studiochat.Model) {
	ids := make(map[string]struct{}, len(models))
	for _, m := range models {
		ids[m.ID] = struct{}{}
	}
	s.catalog.Store(&ids)
}

// SendOption configures a single Send invocation.
type SendOption func(*sendConfig)

type sendConfig struct {
	onDelta func(string)
}

// WithDeltaHandler sets a callback that receives each non-empty delta as it
// is applied to the transcript. If nil or not set, deltas are applied
// silently.
func WithDeltaHandler(h func(string)) SendOption {
	return func(c *sendConfig) {
		c.onDelta = h
	}
}

// Send runs one turn: it validates the input, appends the user message and
// an empty assistant placeholder atomically, then streams deltas into the
// placeholder. On failure the placeholder keeps whatever partial content
// arrived, and the in-flight guard is released so a new turn can start.
func (s *Session) Send(ctx context.Context, userText, model string, opts ...SendOption) error {
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	text := strings.TrimSpace(userText)
	if text == "" {
		return fmt.Errorf("empty message: %w", studiochat.ErrInvalidRequest)
	}
	if model == "" {
		return fmt.Errorf("no model selected: %w", studiochat.ErrInvalidRequest)
	}
	if !s.knownModel(model) {
		return fmt.Errorf("unknown model %q: %w", model, studiochat.ErrInvalidRequest)
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return studiochat.ErrAlreadyInProgress
	}
	defer s.inFlight.Store(false)

	// Snapshot first: the turn's context is the transcript as of send time
	// plus the new user message, never the placeholder.
	prior := s.transcript.Snapshot()
	user := studiochat.NewUserMessage(text)
	assistant := studiochat.NewAssistantPlaceholder()
	s.transcript.AppendPair(user, assistant)

	stream, err := s.gw.StreamCompletion(ctx, model, append(prior, user))
	if err != nil {
		return failTurn(err)
	}
	defer stream.Close()

	for {
		delta, err := stream.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return failTurn(err)
		}
		if delta == "" {
			continue
		}
		s.transcript.ApplyDelta(assistant.ID, delta)
		if cfg.onDelta != nil {
			cfg.onDelta(delta)
		}
	}
}

// InFlight reports whether a turn is currently streaming.
func (s *Session) InFlight() bool {
	return s.inFlight.Load()
}

func (s *Session) knownModel(model string) bool {
	ids := s.catalog.Load()
	if ids == nil {
		return false
	}
	_, ok := (*ids)[model]
	return ok
}

// failTurn converts a transport or streaming error into the caller-facing
// form. Auth failures pass through unchanged so the caller can redirect to
// re-authentication; everything else is a CompletionError.
func failTurn(err error) error {
	if errors.Is(err, studiochat.ErrUnauthenticated) || errors.Is(err, studiochat.ErrGatewayUnauthorized) {
		return err
	}
	return &studiochat.CompletionError{Err: err}
}
