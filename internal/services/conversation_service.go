package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/store"
)

// ConversationService handles conversation business logic scoped to one owner.
type ConversationService struct {
	store store.ConversationStore
	log   logrus.FieldLogger
}

// NewConversationService creates a new ConversationService.
func NewConversationService(convStore store.ConversationStore, log logrus.FieldLogger) *ConversationService {
	return &ConversationService{
		store: convStore,
		log:   log.WithField("component", "ConversationService"),
	}
}

func (s *ConversationService) Create(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.store.CreateConversation(ctx, userID, models.DefaultConversationTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "conversation_id": conv.ID}).Info("conversation created")
	return conv, nil
}

func (s *ConversationService) List(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	convs, err := s.store.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

// Delete returns store.ErrNotFound when no conversation owned by userID was removed.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID uuid.UUID) error {
	deleted, err := s.store.DeleteConversation(ctx, userID, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if !deleted {
		return store.ErrNotFound
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "conversation_id": conversationID}).Info("conversation deleted")
	return nil
}

// Messages returns the conversation's messages in creation order, or an empty
// list when userID does not own it.
func (s *ConversationService) Messages(ctx context.Context, userID, conversationID uuid.UUID) ([]models.StoredMessage, error) {
	msgs, err := s.store.GetMessages(ctx, userID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	if msgs == nil {
		msgs = []models.StoredMessage{}
	}
	return msgs, nil
}
