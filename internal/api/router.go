package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/auth"
	"sportsgpt-backend/internal/handlers"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	ChatHandler         *handlers.ChatHandler
	ScoresHandler       *handlers.ScoresHandler
	NewsHandler         *handlers.NewsHandler
	ConversationHandler *handlers.ConversationHandler // nil when no store is configured
	Verifier            auth.Verifier
	CORSOrigins         []string
	Logger              logrus.FieldLogger
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	log := deps.Logger
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HandleHealth)

		// The chat stream runs as long as the model does, so it sits outside the timeout group.
		if deps.ChatHandler == nil {
			panic("ChatHandler dependency is nil in router setup")
		}
		r.With(OptionalAuth(deps.Verifier, log)).Post("/chat", deps.ChatHandler.HandleChat)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			if deps.ScoresHandler != nil {
				r.Get("/scores", deps.ScoresHandler.HandleGetScores)
			} else {
				log.Warn("ScoresHandler dependency is nil, skipping /api/scores route.")
			}

			if deps.NewsHandler != nil {
				r.Get("/news", deps.NewsHandler.HandleGetNews)
			} else {
				log.Warn("NewsHandler dependency is nil, skipping /api/news route.")
			}

			// --- Authenticated Routes ---
			if deps.ConversationHandler != nil {
				r.Route("/conversations", func(r chi.Router) {
					r.Use(RequireAuth(deps.Verifier, log))
					r.Get("/", deps.ConversationHandler.HandleListConversations)
					r.Post("/", deps.ConversationHandler.HandleCreateConversation)
					r.Delete("/{conversationID}", deps.ConversationHandler.HandleDeleteConversation)
					r.Get("/{conversationID}/messages", deps.ConversationHandler.HandleGetMessages)
				})
			} else {
				log.Warn("ConversationHandler dependency is nil, skipping /api/conversations routes.")
			}
		})
	})

	return r
}
