package gateway

import (
	"io"
	"net/http"

	studiochat "github.com/poly-workshop/studiochat"
)

// NewStream exports newStream for testing.
func NewStream(body io.ReadCloser) studiochat.DeltaStream {
	return newStream(body)
}

// AttemptState exports the retry state machine for testing.
type AttemptState = attemptState

// Exported retry states.
const (
	FirstAttempt = firstAttempt
	Retried      = retried
)

// Attempt exports Client.attempt for testing.
func Attempt(c *Client, newReq func() (*http.Request, error)) (*http.Response, error) {
	return c.attempt(newReq)
}

// OnUnauthorized exports attemptState.onUnauthorized for testing.
func OnUnauthorized(s AttemptState) (AttemptState, error) {
	return s.onUnauthorized()
}
