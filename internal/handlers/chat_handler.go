package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/auth"
	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/services"
	"sportsgpt-backend/pkg/httputil"
)

// ChatHandler streams assistant replies for POST /api/chat.
type ChatHandler struct {
	chatService *services.ChatService
	log         logrus.FieldLogger
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chatService *services.ChatService, log logrus.FieldLogger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log.WithField("component", "ChatHandler"),
	}
}

// HandleChat relays the turn and writes assistant text to the response as it
// arrives. The body is plain text, flushed after every fragment.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}
	for _, m := range req.Messages {
		if m.Role != models.RoleUser && m.Role != models.RoleAssistant {
			httputil.RespondError(w, http.StatusBadRequest, "message role must be user or assistant")
			return
		}
	}

	in := services.ChatInput{Messages: req.Messages}
	if req.ConversationID != nil && strings.TrimSpace(*req.ConversationID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.ConversationID))
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid conversation ID")
			return
		}
		in.ConversationID = &id
	}
	if userID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		in.UserID = &userID
	}

	stream := h.chatService.StreamChat(r.Context(), in)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	var writeErr error
	for fragment := range stream.Fragments() {
		// Keep draining after a failed write so the relay can finish.
		if writeErr != nil {
			continue
		}
		if _, writeErr = io.WriteString(w, fragment); writeErr != nil {
			h.log.WithError(writeErr).Warn("client write failed, discarding remaining stream")
			continue
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			writeErr = err
		}
	}

	res := stream.Wait()
	entry := h.log.WithFields(logrus.Fields{
		"conversation_id": res.ConversationID,
		"attempted":       res.Attempted,
		"title_set":       res.TitleSet,
		"assistant_runes": res.AssistantRunes,
	})
	switch {
	case res.Err != nil:
		entry.WithError(res.Err).Error("failed to persist chat turn")
	case res.Skipped != "":
		entry.WithField("reason", res.Skipped).Debug("chat turn not persisted")
	default:
		entry.Info("chat turn persisted")
	}
}
