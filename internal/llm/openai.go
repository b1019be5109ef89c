package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiProvider struct {
	client    openai.Client
	model     string
	maxTokens int
}

func newOpenAIProvider(cfg Config) *openaiProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &openaiProvider{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}
}

func (p *openaiProvider) Model() string {
	return p.model
}

func (p *openaiProvider) StreamChat(ctx context.Context, req Request, onDelta func(string) error) error {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.maxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model:               p.model,
		Messages:            p.convertMessages(req),
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onDelta(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("openai stream: %w", err)
	}
	return nil
}

func (p *openaiProvider) convertMessages(req Request) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		out = append(out, openai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		if normalizeRole(m.Role) == "user" {
			out = append(out, openai.UserMessage(m.Content))
		} else {
			out = append(out, openai.AssistantMessage(m.Content))
		}
	}
	return out
}
