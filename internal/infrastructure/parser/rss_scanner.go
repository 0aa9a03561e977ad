package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"techpulse/internal/domain"
	"techpulse/internal/scanner"
)

// RSSScanner treats an RSS/Atom feed as the story ranking; items arrive with
// their details so candidates are already resolved.
type RSSScanner struct {
	client  *http.Client
	feedURL string
	logger  *slog.Logger
}

var _ scanner.Scanner = (*RSSScanner)(nil)

// NewRSSScanner wires an HTTP client and the feed location.
func NewRSSScanner(client *http.Client, feedURL string, log *slog.Logger) *RSSScanner {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &RSSScanner{client: client, feedURL: feedURL, logger: log}
}

// Name identifies the strategy inside the registry.
func (r *RSSScanner) Name() string {
	return "rss"
}

// Candidates returns the first limit feed items in document order.
func (r *RSSScanner) Candidates(ctx context.Context, limit int) ([]domain.Candidate, error) {
	feed, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		story := toStory(item)
		candidates = append(candidates, domain.Candidate{ID: story.ID, Story: story})
	}

	if r.logger != nil {
		r.logger.Debug("feed fetched", "feed", feed.Title, "items", len(feed.Items), "candidates", len(candidates))
	}
	return candidates, nil
}

// Story re-reads the feed and returns the item with the given id, or nil
// when it is no longer listed.
func (r *RSSScanner) Story(ctx context.Context, id string) (*domain.Story, error) {
	feed, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range feed.Items {
		if story := toStory(item); story.ID == id {
			return story, nil
		}
	}
	return nil, nil
}

func (r *RSSScanner) fetch(ctx context.Context) (*gofeed.Feed, error) {
	if strings.TrimSpace(r.feedURL) == "" {
		return nil, fmt.Errorf("rss scanner: feed url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "TechPulse/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned %s", domain.ErrUpstreamUnavailable, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(io.LimitReader(resp.Body, 5*maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %v", domain.ErrUpstreamContract, err)
	}
	return feed, nil
}

func toStory(item *gofeed.Item) *domain.Story {
	link := strings.TrimSpace(item.Link)
	id := strings.TrimSpace(item.GUID)
	if id == "" {
		id = link
	}

	story := &domain.Story{
		ID:    id,
		Title: strings.TrimSpace(item.Title),
		URL:   link,
	}
	if item.Author != nil {
		story.By = item.Author.Name
	}
	switch {
	case item.PublishedParsed != nil:
		published := item.PublishedParsed.UTC()
		story.PublishedAt = &published
	case item.UpdatedParsed != nil:
		updated := item.UpdatedParsed.UTC()
		story.PublishedAt = &updated
	}
	return story
}
