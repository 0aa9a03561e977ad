package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

// Embedder turns text into vectors through an embeddings client.
type Embedder struct {
	embedder   embeddings.Embedder
	dimensions int
	logger     *slog.Logger
}

var _ ports.Embedder = (*Embedder)(nil)

// NewEmbedder wraps a client such as *openai.LLM. dimensions <= 0 skips the length check.
func NewEmbedder(client embeddings.EmbedderClient, dimensions int, log *slog.Logger) (*Embedder, error) {
	impl, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	return &Embedder{embedder: impl, dimensions: dimensions, logger: log}, nil
}

// Embed returns the vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: embed: %v", domain.ErrUpstreamUnavailable, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: embed: empty vector", domain.ErrUpstreamContract)
	}
	if e.dimensions > 0 && len(vector) != e.dimensions {
		return nil, fmt.Errorf("%w: embed: got %d dimensions, want %d", domain.ErrUpstreamContract, len(vector), e.dimensions)
	}

	if e.logger != nil {
		e.logger.Debug("text embedded", "length", len(text), "dimensions", len(vector))
	}
	return vector, nil
}
