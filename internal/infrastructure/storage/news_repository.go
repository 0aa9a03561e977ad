package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

const searchSimilarSQL = `SELECT id, title, url, summary, sentiment_score, category, published_at, created_at,
       1 - (embedding <=> $1) AS similarity
FROM news_items
WHERE embedding IS NOT NULL
ORDER BY embedding <=> $1
LIMIT $2`

// NewsRepository persists news items into Postgres.
type NewsRepository struct {
	db DBTX
}

var _ ports.NewsRepository = (*NewsRepository)(nil)

// NewNewsRepository wires a pool (or any DBTX).
func NewNewsRepository(db DBTX) *NewsRepository {
	return &NewsRepository{db: db}
}

// FindByURL returns the stored item with exactly this URL, or nil.
func (r *NewsRepository) FindByURL(ctx context.Context, url string) (*domain.NewsItem, error) {
	query, args, err := psql.Select(newsColumns...).
		From(newsTable).
		Where("url = ?", url).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	item, err := scanNewsItem(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by url: %w", err)
	}
	return &item, nil
}

// Insert stores a classified item. It reports false when the URL already
// exists; the existing row is left untouched.
func (r *NewsRepository) Insert(ctx context.Context, item domain.NewNewsItem) (bool, error) {
	var embedding any
	if len(item.Embedding) > 0 {
		embedding = pgvector.NewVector(item.Embedding)
	}

	query, args, err := psql.Insert(newsTable).
		Columns("title", "url", "summary", "sentiment_score", "category", "published_at", "embedding").
		Values(item.Title, item.URL, item.Summary, item.SentimentScore, string(item.Category), item.PublishedAt, embedding).
		Suffix("ON CONFLICT (url) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert news item: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListFeed returns one page of the filtered feed and the total match count.
func (r *NewsRepository) ListFeed(ctx context.Context, q domain.FeedQuery, pageSize int) ([]domain.NewsItem, int, error) {
	countSQL, countArgs, err := feedCountQuery(q)
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feed: %w", err)
	}

	pageSQL, pageArgs, err := feedPageQuery(q, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("build feed query: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query feed: %w", err)
	}
	items, err := collectNewsItems(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("read feed: %w", err)
	}
	return items, int(total), nil
}

// SearchSimilar returns up to limit embedded items ordered by cosine distance.
func (r *NewsRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.SearchResult, error) {
	rows, err := r.db.Query(ctx, searchSimilarSQL, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	results := make([]domain.SearchResult, 0, limit)
	for rows.Next() {
		var (
			res        domain.SearchResult
			similarity float64
		)
		if err := rows.Scan(newsItemDest(&res.Item, &similarity)...); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		res.Similarity = clampSimilarity(similarity)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows: %w", err)
	}
	return results, nil
}

// ListSince returns items created at or after since, newest first.
func (r *NewsRepository) ListSince(ctx context.Context, since time.Time, limit int) ([]domain.NewsItem, error) {
	query, args, err := psql.Select(newsColumns...).
		From(newsTable).
		Where("created_at >= ?", since).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build since query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query since: %w", err)
	}
	items, err := collectNewsItems(rows)
	if err != nil {
		return nil, fmt.Errorf("read since: %w", err)
	}
	return items, nil
}

func newsItemDest(item *domain.NewsItem, extra ...any) []any {
	dest := []any{
		&item.ID, &item.Title, &item.URL, &item.Summary,
		&item.SentimentScore, &item.Category, &item.PublishedAt, &item.CreatedAt,
	}
	return append(dest, extra...)
}

func scanNewsItem(row pgx.Row) (domain.NewsItem, error) {
	var item domain.NewsItem
	err := row.Scan(newsItemDest(&item)...)
	return item, err
}

func collectNewsItems(rows pgx.Rows) ([]domain.NewsItem, error) {
	defer rows.Close()

	items := make([]domain.NewsItem, 0)
	for rows.Next() {
		item, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func clampSimilarity(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
