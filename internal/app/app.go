package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"techpulse/internal/config"
	"techpulse/internal/infrastructure/cache"
	"techpulse/internal/infrastructure/llm"
	"techpulse/internal/infrastructure/mail"
	"techpulse/internal/infrastructure/parser"
	"techpulse/internal/infrastructure/scheduler"
	"techpulse/internal/infrastructure/storage"
	"techpulse/internal/ports"
	"techpulse/internal/rest"
	"techpulse/internal/scanner"
	"techpulse/internal/usecase"
	"techpulse/migrations"
	"techpulse/pkg/logger"
)

// Application wires configs to use cases and owns the lifecycle of shared resources.
type Application struct {
	cfg    config.Config
	logger *slog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client

	news     *storage.NewsRepository
	embedder ports.Embedder

	pipeline      *usecase.Pipeline
	feed          *usecase.Feed
	search        *usecase.Search
	subscriptions *usecase.Subscriptions
	chat          *usecase.Chat
	digest        *usecase.Digest
}

// New connects to Postgres (and Redis when configured) and builds every use case.
// A missing LLM key leaves ingestion, search and chat disabled.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	pool, err := storage.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	a := &Application{cfg: cfg, logger: baseLogger, pool: pool}
	a.news = storage.NewNewsRepository(pool)
	subscribers := storage.NewSubscriberRepository(pool)

	httpClient := &http.Client{Timeout: cfg.Source.RequestTimeout}
	registry := scanner.NewRegistry()
	registry.Register(parser.NewHackerNewsScanner(httpClient, cfg.Source.HackerNewsURL, baseLogger.With("component", "scanner.hackernews")))
	registry.Register(parser.NewRSSScanner(httpClient, cfg.Source.FeedURL, baseLogger.With("component", "scanner.rss")))
	source := parser.NewStrategySource(registry, cfg.Source.Scanner, baseLogger.With("component", "source"))

	var inspector ports.PageInspector
	if cfg.Source.InspectPages {
		inspector = parser.NewPageInspector(nil)
	}

	var classifier ports.Classifier
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		baseLogger.Warn("llm disabled", "err", err)
	} else {
		classifier = llm.NewClassifier(client, baseLogger.With("component", "classifier"))
		a.chat = usecase.NewChat(llm.NewChatStreamer(client, baseLogger.With("component", "chat")))

		embedder, err := llm.NewEmbedder(client, cfg.LLM.EmbeddingDimensions, baseLogger.With("component", "embedder"))
		if err != nil {
			a.Close()
			return nil, err
		}
		a.embedder = embedder
	}

	if a.embedder != nil && cfg.Cache.RedisURL != "" {
		rdb, err := cache.NewClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			baseLogger.Warn("embedding cache disabled", "err", err)
		} else {
			a.redis = rdb
			a.embedder = cache.NewEmbeddingCache(rdb, a.embedder, cfg.LLM.EmbeddingModel, cfg.Cache.TTL, baseLogger.With("component", "embedding-cache"))
		}
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Repository: a.news,
		Classifier: classifier,
		Embedder:   a.embedder,
		Inspector:  inspector,
		Logger:     baseLogger.With("component", "pipeline"),
		BatchSize:  cfg.Source.BatchSize,
	})
	a.feed = usecase.NewFeed(a.news, cfg.Feed.PageSize)
	if a.embedder != nil {
		a.search = usecase.NewSearch(a.embedder, a.news, cfg.Feed.SearchLimit, baseLogger.With("component", "search"))
	}
	a.subscriptions = usecase.NewSubscriptions(subscribers)

	if cfg.Mail.Enabled() {
		a.digest = usecase.NewDigest(usecase.DigestDeps{
			News:        a.news,
			Subscribers: subscribers,
			Notifier:    mail.NewNotifier(cfg.Mail),
			Logger:      baseLogger.With("component", "digest"),
			Interval:    cfg.Digest.Interval,
			Limit:       cfg.Digest.Limit,
			Subject:     cfg.Digest.Subject,
		})
	}

	return a, nil
}

// Serve runs the HTTP server and in-process schedules until ctx is canceled.
func (a *Application) Serve(ctx context.Context) error {
	deps := rest.Deps{
		Ingester:   a.pipeline,
		Feed:       a.feed,
		Subscribe:  a.subscriptions,
		Health:     a.pool.Ping,
		CronSecret: a.cfg.Server.CronSecret,
		Logger:     a.logger.With("component", "http"),
	}
	if a.search != nil {
		deps.Search = a.search
	}
	if a.chat != nil {
		deps.Chat = a.chat
	}
	server := rest.NewServer(a.cfg.Server.Addr, deps)

	var jobs []usecase.Job
	if a.cfg.Scheduler.IngestInterval > 0 {
		jobs = append(jobs, usecase.IngestJob(scheduler.NewIntervalScheduler(a.cfg.Scheduler.IngestInterval, true), a.pipeline))
	}
	if a.digest != nil {
		jobs = append(jobs, usecase.DigestJob(scheduler.NewIntervalScheduler(a.cfg.Digest.Interval, false), a.digest))
	}
	sched := usecase.NewScheduler(a.logger.With("component", "scheduler"), jobs...)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		a.logger.Warn("scheduler stop", "err", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Warn("http shutdown", "err", err)
	}
	return serveErr
}

// Ingest performs one ingestion run.
func (a *Application) Ingest(ctx context.Context) error {
	outcome, err := a.pipeline.Ingest(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("ingest complete", "new", outcome.NewCount, "skipped", outcome.SkippedCount, "failed", outcome.FailedCount)
	return nil
}

// Digest mails the recent stories once.
func (a *Application) Digest(ctx context.Context) error {
	if a.digest == nil {
		return fmt.Errorf("digest disabled: mail is not configured")
	}
	report, err := a.digest.Send(ctx, time.Now())
	if err != nil {
		return err
	}
	a.logger.Info("digest complete", "items", report.Items, "sent", report.Sent, "failed", report.Failed)
	return nil
}

// Seed loads the demo stories.
func (a *Application) Seed(ctx context.Context) error {
	inserted, err := usecase.Seed(ctx, a.news, a.embedder)
	if err != nil {
		return err
	}
	a.logger.Info("seed complete", "inserted", inserted)
	return nil
}

// Close releases pooled connections.
func (a *Application) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", "err", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// Migrate runs a goose command against the configured database.
func Migrate(ctx context.Context, cfg config.Config, command string) error {
	pool, err := storage.Connect(ctx, cfg.Database.URL, 1)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	return migrations.Exec(db, command)
}
