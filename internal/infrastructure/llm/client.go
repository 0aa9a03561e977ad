package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"techpulse/internal/config"
)

// Generator is the slice of llms.Model the adapters rely on.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// NewClient builds an OpenAI-compatible client that serves chat and embeddings.
func NewClient(cfg config.LLMConfig) (*openai.LLM, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("llm client misconfigured: api key is empty")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return client, nil
}

func firstChoice(resp *llms.ContentResponse) (string, bool) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", false
	}
	return resp.Choices[0].Content, true
}
