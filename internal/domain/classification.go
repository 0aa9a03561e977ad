package domain

import (
	"fmt"
	"strings"
)

const (
	MinSentiment = 1
	MaxSentiment = 10
)

// ClassifyRequest is the classifier input for one story.
type ClassifyRequest struct {
	Title   string
	URL     string
	Excerpt string
}

// Classification is the classifier's structured verdict.
type Classification struct {
	Summary        string   `json:"summary"`
	SentimentScore int      `json:"sentimentScore"`
	Category       Category `json:"category"`
}

// Validate checks the classifier contract. Violations wrap ErrUpstreamContract.
func (c Classification) Validate() error {
	if strings.TrimSpace(c.Summary) == "" {
		return fmt.Errorf("%w: empty summary", ErrUpstreamContract)
	}
	if c.SentimentScore < MinSentiment || c.SentimentScore > MaxSentiment {
		return fmt.Errorf("%w: sentiment score %d outside [%d,%d]",
			ErrUpstreamContract, c.SentimentScore, MinSentiment, MaxSentiment)
	}
	if _, ok := ParseCategory(string(c.Category)); !ok {
		return fmt.Errorf("%w: unknown category %q", ErrUpstreamContract, c.Category)
	}
	return nil
}
