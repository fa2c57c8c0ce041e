package studiochat

import "sync"

// Transcript is the ordered, append-only sequence of chat messages for one
// session. All mutations preserve insertion order and message-ID uniqueness.
// It is safe for concurrent use: the stream consumer appends deltas while
// the UI reads snapshots.
type Transcript struct {
	mu       sync.Mutex
	messages []ChatMessage
	index    map[string]int // message ID -> position in messages
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{index: make(map[string]int)}
}

// Append adds a message to the end of the transcript. A message whose ID is
// already present is ignored, preserving ID uniqueness.
func (t *Transcript) Append(msg ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.append(msg)
}

// AppendPair adds a user message and its assistant placeholder in a single
// mutation, so no snapshot ever shows the user message without its pair.
func (t *Transcript) AppendPair(user, assistant ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.append(user)
	t.append(assistant)
}

func (t *Transcript) append(msg ChatMessage) {
	if _, ok := t.index[msg.ID]; ok {
		return
	}
	t.index[msg.ID] = len(t.messages)
	t.messages = append(t.messages, msg)
}

// ApplyDelta appends delta to the content of the message with the given ID.
// Empty deltas and unknown IDs are no-ops; the latter guards against
// deliveries that race a Reset.
func (t *Transcript) ApplyDelta(id, delta string) {
	if delta == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.index[id]
	if !ok {
		return
	}
	t.messages[i].Content += delta
}

// Reset removes all messages.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
	t.index = make(map[string]int)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Snapshot returns a copy of the messages in insertion order.
func (t *Transcript) Snapshot() []ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}
