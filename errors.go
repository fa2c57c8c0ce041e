package studiochat

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrUnauthenticated indicates the BFF rejected the caller outright.
	// The caller should redirect to re-authentication; never retried.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrGatewayUnauthorized indicates the gateway rejected the credential
	// after the single reissue-and-retry was already exhausted.
	ErrGatewayUnauthorized = errors.New("gateway unauthorized")

	// ErrInvalidRequest indicates a client-side precondition was violated;
	// the request never reached the network.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAlreadyInProgress indicates a turn was attempted while another
	// turn was still in flight.
	ErrAlreadyInProgress = errors.New("completion already in progress")

	// ErrStreamClosed indicates an operation on a closed delta stream.
	ErrStreamClosed = errors.New("stream closed")
)

// IssuanceError indicates the BFF token endpoint failed for a reason other
// than a missing session.
type IssuanceError struct {
	Status int
}

func (e *IssuanceError) Error() string {
	return fmt.Sprintf("token issuance failed: status %d", e.Status)
}

// CompletionError wraps a network or streaming failure during a turn.
// Partial assistant content appended before the failure is preserved.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }
