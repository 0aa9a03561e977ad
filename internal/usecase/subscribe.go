package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"techpulse/internal/domain"
	"techpulse/internal/metrics"
	"techpulse/internal/ports"
)

// Subscriptions registers digest subscribers.
type Subscriptions struct {
	repository ports.SubscriberRepository
	validate   *validator.Validate
}

// NewSubscriptions wires the subscriber store.
func NewSubscriptions(repo ports.SubscriberRepository) *Subscriptions {
	return &Subscriptions{repository: repo, validate: validator.New()}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Subscribe stores the address. created is false when it was already subscribed.
func (s *Subscriptions) Subscribe(ctx context.Context, raw string) (bool, error) {
	email := NormalizeEmail(raw)
	if err := s.validate.Var(email, "required,email,max=254"); err != nil {
		metrics.RecordSubscription("invalid")
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidEmail, email)
	}

	created, err := s.repository.Subscribe(ctx, email)
	if err != nil {
		metrics.RecordSubscription("error")
		return false, fmt.Errorf("subscribe: %w", err)
	}

	if created {
		metrics.RecordSubscription("created")
	} else {
		metrics.RecordSubscription("existing")
	}
	return created, nil
}
