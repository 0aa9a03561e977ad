package domain

import (
	"math"
	"strings"
)

// SentimentBucket names a range of the 1..10 sentiment score.
type SentimentBucket string

const (
	SentimentAny      SentimentBucket = ""
	SentimentPositive SentimentBucket = "positive"
	SentimentNeutral  SentimentBucket = "neutral"
	SentimentNegative SentimentBucket = "negative"
)

// ParseSentimentBucket maps a query value to a bucket. Unknown values mean
// no filter.
func ParseSentimentBucket(raw string) SentimentBucket {
	switch SentimentBucket(strings.ToLower(strings.TrimSpace(raw))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNeutral:
		return SentimentNeutral
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentAny
	}
}

// Range returns the inclusive score bounds for the bucket; ok is false for
// SentimentAny.
func (b SentimentBucket) Range() (lo, hi int, ok bool) {
	switch b {
	case SentimentPositive:
		return 7, MaxSentiment, true
	case SentimentNeutral:
		return 4, 6, true
	case SentimentNegative:
		return MinSentiment, 3, true
	default:
		return 0, 0, false
	}
}

// FeedQuery holds the optional feed filters and the requested page.
type FeedQuery struct {
	Category  string
	Sentiment SentimentBucket
	Page      int
}

// CategoryFilter returns the category to match, or "" when unfiltered.
func (q FeedQuery) CategoryFilter() string {
	c := strings.TrimSpace(q.Category)
	if c == "" || strings.EqualFold(c, CategoryAll) {
		return ""
	}
	return c
}

// ClampedPage returns the page number, never below 1.
func (q FeedQuery) ClampedPage() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

// Offset returns the row offset of the page for the given page size.
// Pages past the representable range saturate at math.MaxInt.
func (q FeedQuery) Offset(pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	skipped := q.ClampedPage() - 1
	if skipped > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return skipped * pageSize
}
