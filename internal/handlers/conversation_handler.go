package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/auth"
	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/store"
	"sportsgpt-backend/pkg/httputil"
)

// ConversationManager is implemented by services.ConversationService.
type ConversationManager interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.Conversation, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)
	Delete(ctx context.Context, userID, conversationID uuid.UUID) error
	Messages(ctx context.Context, userID, conversationID uuid.UUID) ([]models.StoredMessage, error)
}

// ConversationHandler holds dependencies for conversation handlers.
// Every route requires an authenticated user in the request context.
type ConversationHandler struct {
	conversations ConversationManager
	log           logrus.FieldLogger
}

func NewConversationHandler(conversations ConversationManager, log logrus.FieldLogger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		log:           log.WithField("component", "ConversationHandler"),
	}
}

func (h *ConversationHandler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	convs, err := h.conversations.List(r.Context(), userID)
	if err != nil {
		h.log.WithField("user_id", userID).WithError(err).Error("failed to list conversations")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list conversations")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListConversationsResponse{Conversations: convs})
}

func (h *ConversationHandler) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conv, err := h.conversations.Create(r.Context(), userID)
	if err != nil {
		h.log.WithField("user_id", userID).WithError(err).Error("failed to create conversation")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create conversation")
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, conv)
}

func (h *ConversationHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	convID, err := uuid.Parse(chi.URLParam(r, "conversationID"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	if err := h.conversations.Delete(r.Context(), userID, convID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		h.log.WithField("conversation_id", convID).WithError(err).Error("failed to delete conversation")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete conversation")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

func (h *ConversationHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	convID, err := uuid.Parse(chi.URLParam(r, "conversationID"))
	if err != nil {
		// Nobody owns an id that cannot exist.
		httputil.RespondJSON(w, http.StatusOK, models.ListMessagesResponse{Messages: []models.StoredMessage{}})
		return
	}

	msgs, err := h.conversations.Messages(r.Context(), userID, convID)
	if err != nil {
		h.log.WithField("conversation_id", convID).WithError(err).Error("failed to get messages")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get messages")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListMessagesResponse{Messages: msgs})
}
