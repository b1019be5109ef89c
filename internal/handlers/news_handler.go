package handlers

import (
	"context"
	"net/http"

	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/news"
	"sportsgpt-backend/pkg/httputil"
)

// NewsSource returns up to count trending articles, never failing.
type NewsSource interface {
	Trending(ctx context.Context, count int) []models.NewsArticle
}

// NewsHandler serves GET /api/news.
type NewsHandler struct {
	source NewsSource
}

func NewNewsHandler(source NewsSource) *NewsHandler {
	return &NewsHandler{source: source}
}

func (h *NewsHandler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	articles := h.source.Trending(r.Context(), news.DefaultCount)
	if articles == nil {
		articles = []models.NewsArticle{}
	}
	httputil.RespondJSON(w, http.StatusOK, models.NewsResponse{Articles: articles})
}
