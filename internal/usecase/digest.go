package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"techpulse/internal/domain"
	"techpulse/internal/metrics"
	"techpulse/internal/ports"
)

// DigestDeps wires the digest sender.
type DigestDeps struct {
	News        ports.NewsRepository
	Subscribers ports.SubscriberRepository
	Notifier    ports.Notifier
	Logger      *slog.Logger
	Interval    time.Duration
	Limit       int
	Subject     string
}

// DigestReport summarizes one digest round.
type DigestReport struct {
	Items      int
	Recipients int
	Sent       int
	Failed     int
}

// Digest mails recent stories to every active subscriber.
type Digest struct {
	news        ports.NewsRepository
	subscribers ports.SubscriberRepository
	notifier    ports.Notifier
	logger      *slog.Logger
	interval    time.Duration
	limit       int
	subject     string
}

// NewDigest constructs the digest use case.
func NewDigest(deps DigestDeps) *Digest {
	d := &Digest{
		news:        deps.News,
		subscribers: deps.Subscribers,
		notifier:    deps.Notifier,
		logger:      deps.Logger,
		interval:    deps.Interval,
		limit:       deps.Limit,
		subject:     deps.Subject,
	}
	if d.interval <= 0 {
		d.interval = 24 * time.Hour
	}
	if d.limit <= 0 {
		d.limit = 10
	}
	if d.subject == "" {
		d.subject = "TechPulse digest"
	}
	return d
}

// Send mails items created during the interval before now. A failed
// recipient is logged and does not stop the others.
func (d *Digest) Send(ctx context.Context, now time.Time) (DigestReport, error) {
	var report DigestReport
	if d.news == nil || d.subscribers == nil || d.notifier == nil {
		return report, fmt.Errorf("digest misconfigured")
	}

	items, err := d.news.ListSince(ctx, now.Add(-d.interval), d.limit)
	if err != nil {
		return report, fmt.Errorf("load digest items: %w", err)
	}
	report.Items = len(items)
	if len(items) == 0 {
		d.info("digest skipped, no new items")
		return report, nil
	}

	subscribers, err := d.subscribers.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("load subscribers: %w", err)
	}
	report.Recipients = len(subscribers)
	if len(subscribers) == 0 {
		d.info("digest skipped, no subscribers")
		return report, nil
	}

	body := buildDigestMessage(items)
	for _, sub := range subscribers {
		if err := d.notifier.PublishDigest(ctx, sub.Email, d.subject, body); err != nil {
			report.Failed++
			metrics.RecordDigestMail("failed")
			if d.logger != nil {
				d.logger.Warn("digest delivery failed", "email", sub.Email, "err", err)
			}
			continue
		}
		report.Sent++
		metrics.RecordDigestMail("sent")
	}

	d.info("digest sent", "items", report.Items, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

func buildDigestMessage(items []domain.NewsItem) string {
	var b strings.Builder
	b.WriteString("Today in tech\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item.Title)
		if item.Category != nil || item.SentimentScore != nil {
			fmt.Fprintf(&b, "  %s | Sentiment: %s\n", deref(item.Category, "Other"), sentimentLabel(item.SentimentScore))
		}
		if item.Summary != nil && *item.Summary != "" {
			fmt.Fprintf(&b, "  %s\n", *item.Summary)
		}
		fmt.Fprintf(&b, "  %s\n\n", item.URL)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func sentimentLabel(score *int) string {
	if score == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d/10", *score)
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func (d *Digest) info(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Info(msg, args...)
	}
}
