package storage

import (
	sq "github.com/Masterminds/squirrel"

	"techpulse/internal/domain"
)

const newsTable = "news_items"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	newsColumns = []string{
		"id", "title", "url", "summary", "sentiment_score", "category", "published_at", "created_at",
	}
)

// feedPredicates translates the optional filters into ANDed WHERE clauses.
func feedPredicates(q domain.FeedQuery) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if category := q.CategoryFilter(); category != "" {
		preds = append(preds, sq.Eq{"category": category})
	}
	if lo, hi, ok := q.Sentiment.Range(); ok {
		preds = append(preds,
			sq.GtOrEq{"sentiment_score": lo},
			sq.LtOrEq{"sentiment_score": hi},
		)
	}
	return preds
}

func applyWhere(b sq.SelectBuilder, preds []sq.Sqlizer) sq.SelectBuilder {
	for _, p := range preds {
		b = b.Where(p)
	}
	return b
}

// feedPageQuery builds the ordered, paginated listing statement.
func feedPageQuery(q domain.FeedQuery, pageSize int) (string, []any, error) {
	b := psql.Select(newsColumns...).From(newsTable)
	b = applyWhere(b, feedPredicates(q)).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(q.Offset(pageSize)))
	return b.ToSql()
}

// feedCountQuery counts every row matching the same filters.
func feedCountQuery(q domain.FeedQuery) (string, []any, error) {
	b := psql.Select("COUNT(*)").From(newsTable)
	return applyWhere(b, feedPredicates(q)).ToSql()
}
