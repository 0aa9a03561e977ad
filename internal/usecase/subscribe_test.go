package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"techpulse/internal/domain"
)

func TestSubscribeTwiceStoresOneRow(t *testing.T) {
	t.Parallel()

	repo := &fakeSubscriberRepo{}
	subs := NewSubscriptions(repo)
	ctx := context.Background()

	created, err := subs.Subscribe(ctx, "  CTO@Example.com ")
	if err != nil || !created {
		t.Fatalf("first subscribe: created=%v err=%v", created, err)
	}
	created, err = subs.Subscribe(ctx, "cto@example.com")
	if err != nil || created {
		t.Fatalf("second subscribe: created=%v err=%v", created, err)
	}
	if len(repo.emails) != 1 || repo.emails[0] != "cto@example.com" {
		t.Fatalf("unexpected stored emails: %v", repo.emails)
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	repo := &fakeSubscriberRepo{}
	subs := NewSubscriptions(repo)

	for _, raw := range []string{"", "   ", "not-an-email", "a@", strings.Repeat("a", 250) + "@example.com"} {
		_, err := subs.Subscribe(context.Background(), raw)
		if !errors.Is(err, domain.ErrInvalidEmail) {
			t.Fatalf("Subscribe(%q): expected ErrInvalidEmail, got %v", raw, err)
		}
	}
	if len(repo.emails) != 0 {
		t.Fatalf("invalid emails must not be stored: %v", repo.emails)
	}
}
