package domain

import "time"

// NewsItem is one ingested story as stored in Postgres.
type NewsItem struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Summary        *string    `json:"summary"`
	SentimentScore *int       `json:"sentimentScore"`
	Category       *string    `json:"category"`
	PublishedAt    *time.Time `json:"publishedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewNewsItem carries everything written on first successful classification.
type NewNewsItem struct {
	Title          string
	URL            string
	Summary        string
	SentimentScore int
	Category       Category
	PublishedAt    *time.Time
	Embedding      []float32
}

// Subscriber is an email opted in to digests.
type Subscriber struct {
	ID        int64
	Email     string
	IsActive  bool
	CreatedAt time.Time
}

// Story is the upstream view of a candidate before classification.
type Story struct {
	ID          string
	Title       string
	URL         string
	By          string
	Score       int
	PublishedAt *time.Time
}

// Candidate references an upstream story in source order. Sources that
// deliver full details with the listing set Story directly.
type Candidate struct {
	ID    string
	Story *Story
}

// SearchResult pairs a stored item with its cosine similarity to the query.
type SearchResult struct {
	Item       NewsItem `json:"item"`
	Similarity float64  `json:"similarity"`
}

// FeedPage is one page of the filtered feed.
type FeedPage struct {
	Items    []NewsItem `json:"items"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Total    int        `json:"total"`
	HasMore  bool       `json:"hasMore"`
}
