package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"sportsgpt-backend/internal/models"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ListConversationsLimit caps how many conversations are returned per owner.
const ListConversationsLimit = 50

// ConversationStore defines the conversation and message operations.
// Every owner-facing operation is scoped by the owner's user ID.
type ConversationStore interface {
	CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)
	// DeleteConversation reports whether a row owned by userID was removed.
	DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) (bool, error)
	// GetMessages returns an empty slice when the conversation is not owned by userID.
	GetMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]models.StoredMessage, error)
	IsConversationOwner(ctx context.Context, userID, conversationID uuid.UUID) (bool, error)

	// SaveMessage inserts a message and touches the conversation's updated_at.
	SaveMessage(ctx context.Context, conversationID uuid.UUID, role, content string) (*models.StoredMessage, error)
	SetConversationTitle(ctx context.Context, conversationID uuid.UUID, title string) error
	CountMessagesByRole(ctx context.Context, conversationID uuid.UUID, role string) (int, error)
}
