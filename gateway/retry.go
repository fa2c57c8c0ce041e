package gateway

import studiochat "github.com/poly-workshop/studiochat"

// attemptState makes the at-most-one-retry invariant structural: a 401 moves
// firstAttempt to retried, and a 401 in retried terminates. The credential is
// either valid after one reissue or the session truly requires
// re-authentication; looping further would mask real auth failures.
type attemptState int

const (
	firstAttempt attemptState = iota
	retried
)

// onUnauthorized returns the state for the next attempt, or the terminal
// error once the single retry is exhausted.
func (s attemptState) onUnauthorized() (attemptState, error) {
	if s == firstAttempt {
		return retried, nil
	}
	return s, studiochat.ErrGatewayUnauthorized
}
