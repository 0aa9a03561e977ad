package usecase

import (
	"context"
	"fmt"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

const defaultPageSize = 10

// Feed serves the filtered, paginated news listing.
type Feed struct {
	repository ports.NewsRepository
	pageSize   int
}

// NewFeed wires the repository with the configured page size.
func NewFeed(repo ports.NewsRepository, pageSize int) *Feed {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Feed{repository: repo, pageSize: pageSize}
}

// List returns one page, newest first. Pages past the end are empty, not errors.
func (f *Feed) List(ctx context.Context, q domain.FeedQuery) (domain.FeedPage, error) {
	page := q.ClampedPage()
	q.Page = page

	items, total, err := f.repository.ListFeed(ctx, q, f.pageSize)
	if err != nil {
		return domain.FeedPage{}, fmt.Errorf("list feed: %w", err)
	}
	if items == nil {
		items = []domain.NewsItem{}
	}

	return domain.FeedPage{
		Items:    items,
		Page:     page,
		PageSize: f.pageSize,
		Total:    total,
		HasMore:  q.Offset(f.pageSize)+len(items) < total,
	}, nil
}
