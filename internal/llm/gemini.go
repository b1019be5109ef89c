package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int
}

func newGeminiProvider(cfg Config) (*geminiProvider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &geminiProvider{
		client:    client,
		model:     model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func (p *geminiProvider) Model() string {
	return p.model
}

func (p *geminiProvider) StreamChat(ctx context.Context, req Request, onDelta func(string) error) error {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.maxTokens
	}

	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	for resp, err := range p.client.Models.GenerateContentStream(ctx, p.model, p.convertMessages(req.Messages), genCfg) {
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}
		text := resp.Text()
		if text == "" {
			continue
		}
		if err := onDelta(text); err != nil {
			return err
		}
	}
	return nil
}

// convertMessages maps assistant turns onto Gemini's "model" role.
func (p *geminiProvider) convertMessages(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.Role(genai.RoleModel)
		if normalizeRole(m.Role) == "user" {
			role = genai.RoleUser
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return out
}
