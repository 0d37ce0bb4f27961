// Package docchat holds the core chat state: the message transcript and
// the conversation state machine that drives calls to the Q&A service.
package docchat

import "time"

// Message roles. A failed send is recorded in the transcript as a message
// with RoleError rather than a separate machine state.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleError     = "error"
)

// Message represents a single transcript entry. Role is immutable once the
// message is appended.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Archived is a snapshot of a finished conversation, taken when the user
// starts a new chat with a non-empty transcript.
type Archived struct {
	ID         string    `json:"id"`
	ArchivedAt time.Time `json:"archived_at"`
	Messages   []Message `json:"messages"`
}
