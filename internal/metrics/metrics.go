// Package metrics provides Prometheus metrics for TechPulse.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "techpulse"

var (
	// IngestStoriesTotal counts per-story ingestion results.
	IngestStoriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_stories_total",
			Help:      "Stories processed by ingestion, by result",
		},
		[]string{"result"},
	)

	// IngestRunsTotal counts ingestion runs by final status.
	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_runs_total",
			Help:      "Ingestion runs, by status",
		},
		[]string{"status"},
	)

	// IngestDuration measures a whole ingestion run.
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Duration of ingestion runs in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	// SearchRequestsTotal counts semantic searches by outcome.
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Semantic search requests, by outcome",
		},
		[]string{"outcome"},
	)

	// SubscriptionsTotal counts subscribe attempts by outcome.
	SubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_total",
			Help:      "Subscription attempts, by outcome",
		},
		[]string{"outcome"},
	)

	// DigestMailsTotal counts digest deliveries by status.
	DigestMailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "digest_mails_total",
			Help:      "Digest mails, by status",
		},
		[]string{"status"},
	)
)

// RecordStory records one per-story ingestion result.
func RecordStory(result string) {
	IngestStoriesTotal.WithLabelValues(result).Inc()
}

// RecordIngestRun records a finished ingestion run.
func RecordIngestRun(status string, seconds float64) {
	IngestRunsTotal.WithLabelValues(status).Inc()
	IngestDuration.Observe(seconds)
}

// RecordSearch records a search outcome (hit, empty, error).
func RecordSearch(outcome string) {
	SearchRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordSubscription records a subscribe outcome (created, existing, invalid, error).
func RecordSubscription(outcome string) {
	SubscriptionsTotal.WithLabelValues(outcome).Inc()
}

// RecordDigestMail records one digest delivery attempt.
func RecordDigestMail(status string) {
	DigestMailsTotal.WithLabelValues(status).Inc()
}
