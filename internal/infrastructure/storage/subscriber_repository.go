package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"techpulse/internal/domain"
	"techpulse/internal/ports"
)

// SubscriberRepository persists digest subscribers.
type SubscriberRepository struct {
	db DBTX
}

var _ ports.SubscriberRepository = (*SubscriberRepository)(nil)

// NewSubscriberRepository wires a pool (or any DBTX).
func NewSubscriberRepository(db DBTX) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Subscribe records the address; false means it was already present.
func (r *SubscriberRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	query, args, err := psql.Insert("subscribers").
		Columns("email").
		Values(email).
		Suffix("ON CONFLICT (email) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build subscribe: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert subscriber: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListActive returns subscribers that still receive digests.
func (r *SubscriberRepository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	query, args, err := psql.Select("id", "email", "is_active", "created_at").
		From("subscribers").
		Where(sq.Eq{"is_active": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list subscribers: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]domain.Subscriber, 0)
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subscriber rows: %w", err)
	}
	return subscribers, nil
}
