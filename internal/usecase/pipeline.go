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

const defaultBatchSize = 5

// PipelineDeps wires all driven adapters into the ingestion pipeline.
type PipelineDeps struct {
	Source     ports.StorySource
	Repository ports.NewsRepository
	Classifier ports.Classifier
	Embedder   ports.Embedder
	Inspector  ports.PageInspector
	Logger     *slog.Logger
	BatchSize  int
}

// Pipeline implements the story-ingestion workflow.
type Pipeline struct {
	source     ports.StorySource
	repository ports.NewsRepository
	classifier ports.Classifier
	embedder   ports.Embedder
	inspector  ports.PageInspector
	logger     *slog.Logger
	batchSize  int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	batch := deps.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		classifier: deps.Classifier,
		embedder:   deps.Embedder,
		inspector:  deps.Inspector,
		logger:     deps.Logger,
		batchSize:  batch,
	}
}

// Ingest pulls the current top candidates and stores the ones not seen
// before. Stories are handled strictly one after another; a failing story
// never aborts the batch, only a failing candidate list does.
func (p *Pipeline) Ingest(ctx context.Context) (domain.IngestOutcome, error) {
	var outcome domain.IngestOutcome
	if p.source == nil || p.repository == nil || p.classifier == nil {
		return outcome, fmt.Errorf("ingestion pipeline misconfigured")
	}

	started := time.Now()
	candidates, err := p.source.Candidates(ctx, p.batchSize)
	if err != nil {
		metrics.RecordIngestRun("error", time.Since(started).Seconds())
		return outcome, fmt.Errorf("fetch candidates: %w", err)
	}
	p.info("ingestion started", "candidates", len(candidates))

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			metrics.RecordIngestRun("canceled", time.Since(started).Seconds())
			return outcome, err
		}
		result := p.processCandidate(ctx, candidate)
		metrics.RecordStory(result.String())
		outcome = outcome.Add(result)
	}

	metrics.RecordIngestRun("success", time.Since(started).Seconds())
	p.info("ingestion finished",
		"new", outcome.NewCount,
		"skipped", outcome.SkippedCount,
		"failed", outcome.FailedCount,
		"duration", time.Since(started).String())
	return outcome, nil
}

func (p *Pipeline) processCandidate(ctx context.Context, candidate domain.Candidate) domain.StoryResult {
	story := candidate.Story
	if story == nil {
		var err error
		story, err = p.source.Story(ctx, candidate.ID)
		if err != nil {
			p.warn("story unavailable, skipping", "id", candidate.ID, "err", err)
			return domain.StorySkipped
		}
	}
	if story == nil || strings.TrimSpace(story.URL) == "" {
		p.debug("story has no url, skipping", "id", candidate.ID)
		return domain.StorySkipped
	}

	existing, err := p.repository.FindByURL(ctx, story.URL)
	if err != nil {
		p.warn("dedup lookup failed", "url", story.URL, "err", err)
		return domain.StoryFailed
	}
	if existing != nil {
		p.debug("already stored", "url", story.URL)
		return domain.StorySkipped
	}

	req := domain.ClassifyRequest{Title: story.Title, URL: story.URL}
	if p.inspector != nil {
		excerpt, err := p.inspector.Excerpt(ctx, story.URL)
		if err != nil {
			p.debug("page inspection failed", "url", story.URL, "err", err)
		}
		req.Excerpt = excerpt
	}

	verdict, err := p.classifier.Classify(ctx, req)
	if err != nil {
		p.warn("classification failed", "url", story.URL, "err", err)
		return domain.StoryFailed
	}

	item := domain.NewNewsItem{
		Title:          story.Title,
		URL:            story.URL,
		Summary:        verdict.Summary,
		SentimentScore: verdict.SentimentScore,
		Category:       verdict.Category,
		PublishedAt:    story.PublishedAt,
	}
	if p.embedder != nil {
		vector, err := p.embedder.Embed(ctx, embeddingText(story.Title, verdict.Summary))
		if err != nil {
			p.warn("embedding failed, storing without vector", "url", story.URL, "err", err)
		} else {
			item.Embedding = vector
		}
	}

	inserted, err := p.repository.Insert(ctx, item)
	if err != nil {
		p.warn("insert failed", "url", story.URL, "err", err)
		return domain.StoryFailed
	}
	if !inserted {
		p.debug("inserted concurrently by another run", "url", story.URL)
		return domain.StorySkipped
	}

	p.info("story stored", "title", story.Title, "category", verdict.Category, "sentiment", verdict.SentimentScore)
	return domain.StoryNew
}

func embeddingText(title, summary string) string {
	return strings.TrimSpace(title + "\n" + summary)
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
