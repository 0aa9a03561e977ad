package ports

import (
	"context"
	"time"

	"techpulse/internal/domain"
)

// StorySource pulls ranked candidates and their details from an upstream feed.
type StorySource interface {
	Candidates(ctx context.Context, limit int) ([]domain.Candidate, error)
	Story(ctx context.Context, id string) (*domain.Story, error)
}

// NewsRepository persists ingested stories and serves feed/search reads.
type NewsRepository interface {
	FindByURL(ctx context.Context, url string) (*domain.NewsItem, error)
	Insert(ctx context.Context, item domain.NewNewsItem) (bool, error)
	ListFeed(ctx context.Context, q domain.FeedQuery, pageSize int) ([]domain.NewsItem, int, error)
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.SearchResult, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]domain.NewsItem, error)
}

// SubscriberRepository stores digest subscribers.
type SubscriberRepository interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
}

// Classifier produces summary, sentiment and category for a story.
type Classifier interface {
	Classify(ctx context.Context, req domain.ClassifyRequest) (domain.Classification, error)
}

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChatModel streams an assistant answer for a system prompt and history.
type ChatModel interface {
	StreamChat(ctx context.Context, system string, history []domain.ChatMessage, onDelta func(string) error) error
}

// PageInspector fetches a short textual excerpt of a story's destination page.
type PageInspector interface {
	Excerpt(ctx context.Context, url string) (string, error)
}

// Notifier delivers rendered digests to one recipient.
type Notifier interface {
	PublishDigest(ctx context.Context, to, subject, body string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
