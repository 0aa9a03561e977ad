package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"techpulse/internal/domain"
)

func TestDigestSendsToEverySubscriber(t *testing.T) {
	t.Parallel()

	news := repoWithItems(t, 3, domain.CategoryAI, 8)
	subs := &fakeSubscriberRepo{emails: []string{"a@example.com", "broken@example.com", "c@example.com"}}
	notifier := &fakeNotifier{failFor: map[string]bool{"broken@example.com": true}}

	digest := NewDigest(DigestDeps{
		News:        news,
		Subscribers: subs,
		Notifier:    notifier,
		Interval:    24 * time.Hour,
		Limit:       2,
		Subject:     "Daily",
	})

	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	report, err := digest.Send(context.Background(), now)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if report.Items != 2 || report.Recipients != 3 || report.Sent != 2 || report.Failed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if notifier.sent[1].to != "c@example.com" || notifier.sent[0].subject != "Daily" {
		t.Fatalf("unexpected deliveries: %+v", notifier.sent)
	}

	body := notifier.sent[0].body
	for _, want := range []string{"- Story 0", "AI | Sentiment: 8/10", "https://example.com/AI/0"} {
		if !strings.Contains(body, want) {
			t.Fatalf("digest body missing %q:\n%s", want, body)
		}
	}
}

func TestDigestWithoutSubscribersSendsNothing(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	digest := NewDigest(DigestDeps{
		News:        repoWithItems(t, 2, domain.CategoryWeb, 5),
		Subscribers: &fakeSubscriberRepo{},
		Notifier:    notifier,
	})

	report, err := digest.Send(context.Background(), time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if report.Recipients != 0 || len(notifier.sent) != 0 {
		t.Fatalf("expected no mail, got %+v / %d sent", report, len(notifier.sent))
	}
}

func TestDigestWithoutItemsSendsNothing(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	digest := NewDigest(DigestDeps{
		News:        &fakeNewsRepo{},
		Subscribers: &fakeSubscriberRepo{emails: []string{"a@example.com"}},
		Notifier:    notifier,
	})

	report, err := digest.Send(context.Background(), time.Now())
	if err != nil || report.Items != 0 || len(notifier.sent) != 0 {
		t.Fatalf("expected nothing sent, got %+v, %v", report, err)
	}
}
