package usecase

import (
	"context"
	"fmt"
	"time"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

// SeedItems returns the demo stories loaded by the seed command.
func SeedItems() []domain.NewNewsItem {
	jan10 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	jan9 := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)
	return []domain.NewNewsItem{
		{
			Title:          "OpenAI Announces GPT-5 with Reasoning Capabilities",
			URL:            "https://example.com/gpt5-announcement",
			Summary:        "OpenAI reveals GPT-5, featuring advanced reasoning and reduced hallucinations. The model shows significant improvements in complex problem-solving.",
			SentimentScore: 9,
			Category:       domain.CategoryAI,
			PublishedAt:    &jan10,
		},
		{
			Title:          "Apple Vision Pro 2 Leaks Suggest 50% Weight Reduction",
			URL:            "https://example.com/vision-pro-2-leaks",
			Summary:        "Leaked schematics reveal Apple's next VR headset will be significantly lighter. Industry analysts predict a Q4 2025 release.",
			SentimentScore: 7,
			Category:       domain.CategoryHardware,
			PublishedAt:    &jan9,
		},
	}
}

// Seed inserts the demo stories, embedding them when an embedder is given.
// Already present URLs are left alone.
func Seed(ctx context.Context, repo ports.NewsRepository, embedder ports.Embedder) (int, error) {
	inserted := 0
	for _, item := range SeedItems() {
		if embedder != nil {
			if vector, err := embedder.Embed(ctx, embeddingText(item.Title, item.Summary)); err == nil {
				item.Embedding = vector
			}
		}
		ok, err := repo.Insert(ctx, item)
		if err != nil {
			return inserted, fmt.Errorf("seed %s: %w", item.URL, err)
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}
