// Package llm streams chat completions from a generative-text provider.
package llm

import (
	"context"
	"fmt"

	"sportsgpt-backend/internal/config"
)

// Message is one turn of the conversation sent to the provider.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Request is a single streaming completion request.
type Request struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
}

// Provider streams assistant text. onDelta is called once per text fragment in
// arrival order; returning an error from it aborts the stream with that error.
type Provider interface {
	StreamChat(ctx context.Context, req Request, onDelta func(text string) error) error
	Model() string
}

// Config selects and configures a provider.
type Config struct {
	Provider  string
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// ConfigFrom maps application config to provider config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Provider:  cfg.LLMProvider,
		APIKey:    cfg.LLMAPIKey(),
		BaseURL:   cfg.LLMBaseURL,
		Model:     cfg.LLMModel,
		MaxTokens: cfg.LLMMaxTokens,
	}
}

// New constructs the provider named in cfg.
func New(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}

	switch cfg.Provider {
	case config.ProviderAnthropic, "":
		return newAnthropicProvider(cfg), nil
	case config.ProviderOpenAI:
		return newOpenAIProvider(cfg), nil
	case config.ProviderGemini:
		p, err := newGeminiProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// normalizeRole maps client roles onto the two roles providers accept.
func normalizeRole(role string) string {
	if role == "user" {
		return "user"
	}
	return "assistant"
}
