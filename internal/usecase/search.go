package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"techpulse/internal/domain"
	"techpulse/internal/metrics"
	"techpulse/internal/ports"
)

const defaultSearchLimit = 5

// Search answers free-text queries by vector similarity.
type Search struct {
	embedder   ports.Embedder
	repository ports.NewsRepository
	limit      int
	logger     *slog.Logger
}

// NewSearch wires the embedder and repository.
func NewSearch(embedder ports.Embedder, repo ports.NewsRepository, limit int, logger *slog.Logger) *Search {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return &Search{embedder: embedder, repository: repo, limit: limit, logger: logger}
}

// Query returns the closest stored items. A blank query or an embedding
// failure yields an empty result.
func (s *Search) Query(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.RecordSearch("empty")
		return []domain.SearchResult{}, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("search embedding failed", "err", err)
		}
		metrics.RecordSearch("embed_error")
		return []domain.SearchResult{}, nil
	}

	results, err := s.repository.SearchSimilar(ctx, vector, s.limit)
	if err != nil {
		metrics.RecordSearch("error")
		return nil, fmt.Errorf("search similar: %w", err)
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	metrics.RecordSearch("ok")
	return results, nil
}
