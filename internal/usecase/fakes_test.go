package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"techpulse/internal/domain"
)

type fakeSource struct {
	ids     []string
	stories map[string]*domain.Story
	listErr error
	calls   int
}

func (f *fakeSource) Candidates(_ context.Context, limit int) ([]domain.Candidate, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := f.ids
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Candidate{ID: id})
	}
	return out, nil
}

func (f *fakeSource) Story(_ context.Context, id string) (*domain.Story, error) {
	f.calls++
	story, ok := f.stories[id]
	if !ok {
		return nil, domain.ErrUpstreamUnavailable
	}
	return story, nil
}

type fakeNewsRepo struct {
	mu        sync.Mutex
	items     []domain.NewsItem
	inserted  []domain.NewNewsItem
	findErr   error
	insertErr error
	nextID    int64
	clock     time.Time
}

func (r *fakeNewsRepo) FindByURL(_ context.Context, url string) (*domain.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for i := range r.items {
		if r.items[i].URL == url {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *fakeNewsRepo) Insert(_ context.Context, in domain.NewNewsItem) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return false, r.insertErr
	}
	for _, existing := range r.items {
		if existing.URL == in.URL {
			return false, nil
		}
	}
	r.nextID++
	if r.clock.IsZero() {
		r.clock = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	}
	r.clock = r.clock.Add(time.Minute)

	summary := in.Summary
	score := in.SentimentScore
	category := string(in.Category)
	r.items = append(r.items, domain.NewsItem{
		ID:             r.nextID,
		Title:          in.Title,
		URL:            in.URL,
		Summary:        &summary,
		SentimentScore: &score,
		Category:       &category,
		PublishedAt:    in.PublishedAt,
		CreatedAt:      r.clock,
	})
	r.inserted = append(r.inserted, in)
	return true, nil
}

// ListFeed mirrors the SQL semantics: ANDed filters, newest first, offset paging.
func (r *fakeNewsRepo) ListFeed(_ context.Context, q domain.FeedQuery, pageSize int) ([]domain.NewsItem, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.NewsItem
	category := q.CategoryFilter()
	lo, hi, bucketed := q.Sentiment.Range()
	for _, item := range r.items {
		if category != "" && (item.Category == nil || *item.Category != category) {
			continue
		}
		if bucketed && (item.SentimentScore == nil || *item.SentimentScore < lo || *item.SentimentScore > hi) {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	offset := q.Offset(pageSize)
	if offset >= len(matched) {
		return []domain.NewsItem{}, len(matched), nil
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], len(matched), nil
}

func (r *fakeNewsRepo) SearchSimilar(_ context.Context, _ []float32, limit int) ([]domain.SearchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SearchResult, 0, limit)
	for i := 0; i < len(r.items) && i < limit; i++ {
		out = append(out, domain.SearchResult{Item: r.items[i], Similarity: 0.9})
	}
	return out, nil
}

func (r *fakeNewsRepo) ListSince(_ context.Context, since time.Time, limit int) ([]domain.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.NewsItem
	for _, item := range r.items {
		if !item.CreatedAt.Before(since) && len(out) < limit {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeClassifier struct {
	verdicts map[string]domain.Classification
	failFor  map[string]error
	requests []domain.ClassifyRequest
}

func (c *fakeClassifier) Classify(_ context.Context, req domain.ClassifyRequest) (domain.Classification, error) {
	c.requests = append(c.requests, req)
	if err, ok := c.failFor[req.URL]; ok {
		return domain.Classification{}, err
	}
	if v, ok := c.verdicts[req.URL]; ok {
		return v, nil
	}
	return domain.Classification{Summary: "Generic summary.", SentimentScore: 5, Category: domain.CategoryOther}, nil
}

type fakeEmbedder struct {
	vector []float32
	err    error
	texts  []string
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.texts = append(e.texts, text)
	if e.err != nil {
		return nil, e.err
	}
	return e.vector, nil
}

type fakeSubscriberRepo struct {
	emails  []string
	listErr error
}

func (r *fakeSubscriberRepo) Subscribe(_ context.Context, email string) (bool, error) {
	for _, e := range r.emails {
		if e == email {
			return false, nil
		}
	}
	r.emails = append(r.emails, email)
	return true, nil
}

func (r *fakeSubscriberRepo) ListActive(context.Context) ([]domain.Subscriber, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Subscriber, 0, len(r.emails))
	for i, e := range r.emails {
		out = append(out, domain.Subscriber{ID: int64(i + 1), Email: e, IsActive: true})
	}
	return out, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeNotifier struct {
	sent    []sentMail
	failFor map[string]bool
}

func (n *fakeNotifier) PublishDigest(_ context.Context, to, subject, body string) error {
	if n.failFor[to] {
		return errors.New("mailbox unavailable")
	}
	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
