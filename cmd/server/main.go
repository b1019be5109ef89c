package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sportsgpt-backend/internal/api"
	"sportsgpt-backend/internal/auth"
	"sportsgpt-backend/internal/config"
	"sportsgpt-backend/internal/handlers"
	"sportsgpt-backend/internal/llm"
	"sportsgpt-backend/internal/logger"
	"sportsgpt-backend/internal/news"
	"sportsgpt-backend/internal/search"
	"sportsgpt-backend/internal/services"
	"sportsgpt-backend/internal/sports"
	"sportsgpt-backend/internal/store"
	"sportsgpt-backend/internal/store/postgres"
	"sportsgpt-backend/pkg/httputil"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg.LogLevel, cfg.LogFormat)
	logr.Info("Starting SportsGPT Backend...")
	httputil.SetLogger(logr.WithField("component", "httputil"))

	// 2. Initialize Database Connection Pool (optional)
	var convStore store.ConversationStore
	if cfg.StoreEnabled() {
		dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dbCancel()

		poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			logr.WithError(err).Fatal("Unable to parse DATABASE_URL")
		}
		if cfg.DatabasePassword != "" {
			poolCfg.ConnConfig.Password = cfg.DatabasePassword
		}

		dbpool, err := pgxpool.NewWithConfig(dbCtx, poolCfg)
		if err != nil {
			logr.WithError(err).Fatal("Unable to create database connection pool")
		}
		defer dbpool.Close()

		if err := dbpool.Ping(dbCtx); err != nil {
			logr.WithError(err).Fatal("Unable to ping database")
		}
		logr.Info("Database connection pool established and pinged successfully.")

		convStore = postgres.NewPostgresStore(dbpool, logr)
	} else {
		logr.Warn("DATABASE_URL not set, conversation persistence disabled.")
	}

	// 3. Initialize Dependencies (Clients, Services, Handlers)
	provider, err := llm.New(llm.ConfigFrom(cfg))
	if err != nil {
		logr.WithError(err).Fatal("Failed to create LLM provider")
	}
	logr.WithField("provider", cfg.LLMProvider).WithField("model", provider.Model()).Info("LLM provider initialized.")

	scoreClient := sports.NewScoreClient(cfg.ESPNBaseURL, cfg.UpstreamTimeout, logr)
	newsClient := news.NewClient(cfg.NewsFeedURL, cfg.UpstreamTimeout, logr)
	searchClient := search.NewClient(cfg.TavilyAPIKey, "", cfg.UpstreamTimeout, logr)
	if !searchClient.Enabled() {
		logr.Info("TAVILY_API_KEY not set, web search disabled.")
	}

	verifier := auth.NewVerifier(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		logr.Warn("SUPABASE_JWT_SECRET not set, bearer tokens are decoded without signature verification.")
	}

	chatService := services.NewChatService(provider, scoreClient, searchClient, convStore, cfg.LLMMaxTokens, logr)

	routerDeps := api.RouterDependencies{
		ChatHandler:   handlers.NewChatHandler(chatService, logr),
		ScoresHandler: handlers.NewScoresHandler(scoreClient, logr),
		NewsHandler:   handlers.NewNewsHandler(newsClient),
		Verifier:      verifier,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        logr,
	}
	if convStore != nil {
		conversationService := services.NewConversationService(convStore, logr)
		routerDeps.ConversationHandler = handlers.NewConversationHandler(conversationService, logr)
	}

	// 4. Setup Router
	router := api.NewRouter(routerDeps)

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
		// No WriteTimeout: chat responses stream for as long as the model runs.
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logr.WithField("addr", cfg.Addr()).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.WithError(err).Fatalf("Could not listen on %s", cfg.Addr())
		}
		logr.Info("Server listener routine stopped.")
	}()

	<-stopChan
	logr.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.WithError(err).Error("Server graceful shutdown failed")
		return
	}

	logr.Info("Server shutdown complete.")
}
