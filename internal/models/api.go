package models

// --- Request Structs ---

// ChatMessage is one role/content pair of the turn history sent by the client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest defines the expected body for POST /api/chat.
type ChatRequest struct {
	Messages       []ChatMessage `json:"messages"`
	ConversationID *string       `json:"conversation_id,omitempty"`
}

// --- Response Structs ---

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the constant liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// OKResponse acknowledges an operation without a body of its own.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ListConversationsResponse wraps the owner's conversations.
type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

// ListMessagesResponse wraps a conversation's messages in creation order.
type ListMessagesResponse struct {
	Messages []StoredMessage `json:"messages"`
}

// NewsResponse wraps trending headlines.
type NewsResponse struct {
	Articles []NewsArticle `json:"articles"`
}
