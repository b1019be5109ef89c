package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM provider names accepted in LLM_PROVIDER.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	Host        string
	Port        string
	CORSOrigins []string

	LLMProvider     string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GeminiAPIKey    string
	LLMModel        string
	LLMBaseURL      string
	LLMMaxTokens    int

	TavilyAPIKey string

	DatabaseURL      string
	DatabasePassword string // Overrides the password in DatabaseURL when set
	JWTSecret        string // Empty means bearer tokens are decoded, not verified

	ESPNBaseURL     string
	NewsFeedURL     string
	UpstreamTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// LLMAPIKey returns the API key of the configured provider.
func (c *Config) LLMAPIKey() string {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	default:
		return c.AnthropicAPIKey
	}
}

// StoreEnabled reports whether a conversation store is configured.
func (c *Config) StoreEnabled() bool {
	return c.DatabaseURL != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Not fatal, production injects the environment directly.
		log.Println("Warning: Could not load .env file. Using environment variables only.")
	}

	maxTokens, err := getEnvInt("LLM_MAX_TOKENS", 1024)
	if err != nil {
		return nil, err
	}
	timeoutSecs, err := getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:             getEnv("HOST", "0.0.0.0"),
		Port:             getEnv("PORT", "8000"),
		CORSOrigins:      ParseOrigins(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", ProviderAnthropic)),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		LLMModel:         getEnv("LLM_MODEL", ""),
		LLMBaseURL:       getEnv("LLM_BASE_URL", ""),
		LLMMaxTokens:     maxTokens,
		TavilyAPIKey:     getEnv("TAVILY_API_KEY", ""),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabasePassword: getEnv("DATABASE_PASSWORD", ""),
		JWTSecret:        getEnv("SUPABASE_JWT_SECRET", ""),
		ESPNBaseURL:      getEnv("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports"),
		NewsFeedURL:      getEnv("NEWS_FEED_URL", "https://www.espn.com/espn/rss/news"),
		UpstreamTimeout:  time.Duration(timeoutSecs) * time.Second,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Loaded config: Addr=%s, Provider=%s, Store=%t, VerifyTokens=%t, Origins=%v",
		cfg.Addr(), cfg.LLMProvider, cfg.StoreEnabled(), cfg.JWTSecret != "", cfg.CORSOrigins)

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.LLMAPIKey() == "" {
		return fmt.Errorf("API key for LLM provider %q is not set", c.LLMProvider)
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLMMaxTokens)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// ParseOrigins splits a comma-separated origin list, trimming blanks.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
