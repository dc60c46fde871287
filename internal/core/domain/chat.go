package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies who authored a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn in the assistant conversation
type ChatMessage struct {
	ID      uuid.UUID `json:"id"`
	Role    ChatRole  `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}
