package models

import "time"

// Conversation states for the dialogue manager.
const (
	StateGathering      = "gathering"
	StateReadyToConfirm = "ready_to_confirm"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation transcript.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Conversation holds the per-session dialogue state between turns.
// It is created on the first user message and discarded when the booking
// commits, the caller cancels, or the session idles out.
type Conversation struct {
	SessionID string       `json:"session_id"`
	Turns     []Turn       `json:"turns"`
	Draft     BookingDraft `json:"draft"`
	State     string       `json:"state"` // gathering | ready_to_confirm
	UpdatedAt time.Time    `json:"updated_at"`
}
