package studiochat

import "github.com/google/uuid"

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in a transcript. ID is unique within a transcript.
// Only assistant messages mutate after creation: their content grows
// append-only while a completion streams.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage creates a user message with a fresh ID.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{ID: uuid.NewString(), Role: RoleUser, Content: content}
}

// NewAssistantPlaceholder creates an empty assistant message with a fresh ID.
// Its content is filled in by stream deltas.
func NewAssistantPlaceholder() ChatMessage {
	return ChatMessage{ID: uuid.NewString(), Role: RoleAssistant}
}
