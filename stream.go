package studiochat

import "context"

// StreamState indicates the current state of a DeltaStream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving deltas.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// DeltaStream uses a pull-based iterator pattern over incremental assistant
// text. Next() returns the next non-terminal delta, io.EOF once the gateway
// signals completion, or the transport/protocol error that ended the stream.
// Cancellation flows through the context passed to Gateway.StreamCompletion().
//
// Deltas arrive in server order; the transport guarantees in-order delivery
// of a single stream, so callers apply them as received.
type DeltaStream interface {
	Next() (string, error)
	State() StreamState
	Close() error
}

// Gateway is the client-side view of the OpenAI-compatible completion
// gateway. Implementations authenticate via an ambient credential cookie and
// handle the single reissue-and-retry on credential expiry internally; by the
// time a DeltaStream is returned, the auth outcome for the turn is settled.
type Gateway interface {
	ListModels(ctx context.Context) ([]Model, error)
	StreamCompletion(ctx context.Context, model string, messages []ChatMessage) (DeltaStream, error)
}
