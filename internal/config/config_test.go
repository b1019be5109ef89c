package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://sports.example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey())
	assert.Equal(t, 1024, cfg.LLMMaxTokens)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://sports.example.com"}, cfg.CORSOrigins)
	assert.False(t, cfg.StoreEnabled())
}

func TestLoadConfigOpenAI(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("DATABASE_URL", "postgres://localhost/sports")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "sk-openai", cfg.LLMAPIKey())
	assert.True(t, cfg.StoreEnabled())
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
}

func TestLoadConfigGemini(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "g-key", cfg.LLMAPIKey())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing provider key", map[string]string{"LLM_PROVIDER": "anthropic"}},
		{"unknown provider", map[string]string{"LLM_PROVIDER": "cohere", "ANTHROPIC_API_KEY": "k"}},
		{"missing gemini key", map[string]string{"LLM_PROVIDER": "gemini", "ANTHROPIC_API_KEY": "k"}},
		{"bad max tokens", map[string]string{"ANTHROPIC_API_KEY": "k", "LLM_MAX_TOKENS": "lots"}},
		{"zero timeout", map[string]string{"ANTHROPIC_API_KEY": "k", "UPSTREAM_TIMEOUT_SECONDS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ANTHROPIC_API_KEY", "")
			t.Setenv("GEMINI_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
