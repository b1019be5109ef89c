package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles accepted from clients and persisted to the store.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultConversationTitle is assigned on create until the first user message renames it.
const DefaultConversationTitle = "New Chat"

// Conversation represents a chat thread owned by exactly one user.
type Conversation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StoredMessage is a persisted message row belonging to one conversation.
type StoredMessage struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"-"`
	Role           string    `db:"role" json:"role"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
