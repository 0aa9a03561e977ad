package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

// Classifier asks a chat model for a JSON verdict on one story.
type Classifier struct {
	model  Generator
	logger *slog.Logger
}

var _ ports.Classifier = (*Classifier)(nil)

// verdict is decoded loosely; the score arrives as a JSON number that may carry a fraction.
type verdict struct {
	Summary        string  `json:"summary"`
	SentimentScore float64 `json:"sentimentScore"`
	Category       string  `json:"category"`
}

// NewClassifier wraps a chat model.
func NewClassifier(model Generator, log *slog.Logger) *Classifier {
	return &Classifier{model: model, logger: log}
}

// Classify returns a validated classification. Call failures wrap
// ErrUpstreamUnavailable; unusable answers wrap ErrUpstreamContract.
func (c *Classifier) Classify(ctx context.Context, req domain.ClassifyRequest) (domain.Classification, error) {
	if c == nil || c.model == nil {
		return domain.Classification{}, fmt.Errorf("classifier is not configured")
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, classifierSystem()),
		llms.TextParts(llms.ChatMessageTypeHuman, classifierUser(req)),
	}

	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0), llms.WithJSONMode())
	if err != nil {
		return domain.Classification{}, fmt.Errorf("%w: classify: %v", domain.ErrUpstreamUnavailable, err)
	}

	content, ok := firstChoice(resp)
	if !ok {
		return domain.Classification{}, fmt.Errorf("%w: classify: no choices returned", domain.ErrUpstreamContract)
	}

	result, err := decodeVerdict(content)
	if err != nil {
		c.debug("unusable classifier answer", "title", req.Title, "answer", content, "err", err)
		return domain.Classification{}, err
	}

	c.debug("story classified", "title", req.Title, "category", result.Category, "sentiment", result.SentimentScore)
	return result, nil
}

func decodeVerdict(content string) (domain.Classification, error) {
	var v verdict
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &v); err != nil {
		return domain.Classification{}, fmt.Errorf("%w: decode classification: %v", domain.ErrUpstreamContract, err)
	}
	if v.SentimentScore != math.Trunc(v.SentimentScore) {
		return domain.Classification{}, fmt.Errorf("%w: sentiment score %v is not an integer", domain.ErrUpstreamContract, v.SentimentScore)
	}

	result := domain.Classification{
		Summary:        strings.TrimSpace(v.Summary),
		SentimentScore: int(v.SentimentScore),
		Category:       domain.Category(strings.TrimSpace(v.Category)),
	}
	if err := result.Validate(); err != nil {
		return domain.Classification{}, err
	}
	return result, nil
}

func (c *Classifier) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
