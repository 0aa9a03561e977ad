package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"techpulse/internal/domain"
	"techpulse/internal/scanner"
)

const (
	hackerNewsBaseURL = "https://hacker-news.firebaseio.com/v0"
	maxBodyBytes      = 2 << 20
)

// HackerNewsScanner reads the Firebase Hacker News API.
type HackerNewsScanner struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

var _ scanner.Scanner = (*HackerNewsScanner)(nil)

// hnItem mirrors the subset of the item payload TechPulse relies on.
type hnItem struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	By      string `json:"by"`
	Score   int    `json:"score"`
	Time    int64  `json:"time"`
	Deleted bool   `json:"deleted"`
	Dead    bool   `json:"dead"`
}

// NewHackerNewsScanner wires an HTTP client; baseURL defaults to the public API.
func NewHackerNewsScanner(client *http.Client, baseURL string, log *slog.Logger) *HackerNewsScanner {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = hackerNewsBaseURL
	}
	return &HackerNewsScanner{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  log,
	}
}

// Name identifies the strategy inside the registry.
func (h *HackerNewsScanner) Name() string {
	return "hackernews"
}

// Candidates returns the first limit ids of the top stories ranking, in order.
func (h *HackerNewsScanner) Candidates(ctx context.Context, limit int) ([]domain.Candidate, error) {
	var ids []int64
	if err := h.getJSON(ctx, h.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("top stories: %w", err)
	}

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	candidates := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("top stories: %w: non-positive id %d", domain.ErrUpstreamContract, id)
		}
		candidates = append(candidates, domain.Candidate{ID: strconv.FormatInt(id, 10)})
	}

	h.debug("top stories fetched", "count", len(candidates))
	return candidates, nil
}

// Story fetches one item. A null, deleted or dead item yields (nil, nil).
func (h *HackerNewsScanner) Story(ctx context.Context, id string) (*domain.Story, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, fmt.Errorf("story %s: invalid id: %w", id, err)
	}

	var item *hnItem
	if err := h.getJSON(ctx, fmt.Sprintf("%s/item/%s.json", h.baseURL, id), &item); err != nil {
		return nil, fmt.Errorf("story %s: %w", id, err)
	}
	if item == nil || item.Deleted || item.Dead {
		return nil, nil
	}
	if strconv.FormatInt(item.ID, 10) != id {
		return nil, fmt.Errorf("story %s: %w: payload id %d", id, domain.ErrUpstreamContract, item.ID)
	}

	story := &domain.Story{
		ID:    id,
		Title: strings.TrimSpace(item.Title),
		URL:   strings.TrimSpace(item.URL),
		By:    item.By,
		Score: item.Score,
	}
	if item.Time > 0 {
		published := time.Unix(item.Time, 0).UTC()
		story.PublishedAt = &published
	}
	if story.URL != "" && story.Title == "" {
		return nil, fmt.Errorf("story %s: %w: missing title", id, domain.ErrUpstreamContract)
	}

	return story, nil
}

func (h *HackerNewsScanner) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "TechPulse/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: hacker news returned %s", domain.ErrUpstreamUnavailable, resp.Status)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrUpstreamContract)
		}
		return fmt.Errorf("%w: decode: %v", domain.ErrUpstreamContract, err)
	}

	return nil
}

func (h *HackerNewsScanner) debug(msg string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
