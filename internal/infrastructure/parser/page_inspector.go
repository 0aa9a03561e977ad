package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

const maxExcerptRunes = 600

// PageInspector downloads a story's destination page and pulls a short
// description out of its markup.
type PageInspector struct {
	client *http.Client
}

var _ ports.PageInspector = (*PageInspector)(nil)

// NewPageInspector wires an HTTP client with a short default timeout.
func NewPageInspector(client *http.Client) *PageInspector {
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}
	return &PageInspector{client: client}
}

// Excerpt returns the page description, or "" for non-HTML responses.
func (p *PageInspector) Excerpt(ctx context.Context, pageURL string) (string, error) {
	doc, err := p.fetchDocument(ctx, pageURL)
	if err != nil || doc == nil {
		return "", err
	}
	return truncateRunes(extractDescription(doc), maxExcerptRunes), nil
}

func (p *PageInspector) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "TechPulse/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: page returned %s", domain.ErrUpstreamUnavailable, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extractDescription(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = collapseSpace(content); content != "" {
				return content
			}
		}
	}

	var paragraph string
	doc.Find("article p, main p, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		paragraph = collapseSpace(s.Text())
		return paragraph == ""
	})
	return paragraph
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
