package parser

import (
	"context"
	"fmt"
	"log/slog"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
	"techpulse/internal/scanner"
)

// StrategySource implements StorySource via the scanner selected in config.
type StrategySource struct {
	registry *scanner.Registry
	name     string
	logger   *slog.Logger
}

var _ ports.StorySource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with the configured strategy name.
func NewStrategySource(reg *scanner.Registry, name string, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		name:     name,
		logger:   log,
	}
}

// Candidates delegates to the configured scanner.
func (s *StrategySource) Candidates(ctx context.Context, limit int) ([]domain.Candidate, error) {
	strategy, err := s.resolve()
	if err != nil {
		return nil, err
	}

	s.debug("fetch candidates", "scanner", s.name, "limit", limit)
	candidates, err := strategy.Candidates(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("scanner %s: %w", s.name, err)
	}
	s.debug("candidates fetched", "scanner", s.name, "count", len(candidates))
	return candidates, nil
}

// Story delegates to the configured scanner.
func (s *StrategySource) Story(ctx context.Context, id string) (*domain.Story, error) {
	strategy, err := s.resolve()
	if err != nil {
		return nil, err
	}

	story, err := strategy.Story(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("scanner %s: %w", s.name, err)
	}
	return story, nil
}

func (s *StrategySource) resolve() (scanner.Scanner, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}
	return s.registry.Resolve(s.name)
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
