package mock

import (
	"io"

	studiochat "github.com/poly-workshop/studiochat"
)

// DeltaStream is a test double for studiochat.DeltaStream.
// NextFn panics when nil to catch missing setup. StateFn and CloseFn are
// nil-safe (zero value and no-op) because test code commonly calls
// defer stream.Close() and these methods rarely need custom behavior.
type DeltaStream struct {
	NextFn  func() (string, error)
	StateFn func() studiochat.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *DeltaStream) Next() (string, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *DeltaStream) State() studiochat.StreamState {
	if s.StateFn == nil {
		return studiochat.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *DeltaStream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Deltas returns a DeltaStream that yields the given deltas in order and
// then io.EOF. Handy for the common happy-path test.
func Deltas(deltas ...string) *DeltaStream {
	i := 0
	return &DeltaStream{
		NextFn: func() (string, error) {
			if i >= len(deltas) {
				return "", io.EOF
			}
			d := deltas[i]
			i++
			return d, nil
		},
	}
}
