package usecase

import (
	"context"
	"log/slog"
	"time"

	"techpulse/internal/ports"
)

// Job is one recurring unit of work bound to its own driver.
type Job struct {
	Name   string
	Driver ports.Scheduler
	Run    func(ctx context.Context, trigger time.Time) error
}

// Scheduler wires interval drivers with the ingestion and digest use cases.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring jobs. Jobs without a
// driver are ignored.
func NewScheduler(logger *slog.Logger, jobs ...Job) *Scheduler {
	active := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Driver != nil && job.Run != nil {
			active = append(active, job)
		}
	}
	return &Scheduler{jobs: active, logger: logger}
}

// IngestJob adapts the pipeline to a scheduled job.
func IngestJob(driver ports.Scheduler, pipeline *Pipeline) Job {
	return Job{
		Name:   "ingest",
		Driver: driver,
		Run: func(ctx context.Context, _ time.Time) error {
			_, err := pipeline.Ingest(ctx)
			return err
		},
	}
}

// DigestJob adapts the digest sender to a scheduled job.
func DigestJob(driver ports.Scheduler, digest *Digest) Job {
	return Job{
		Name:   "digest",
		Driver: driver,
		Run: func(ctx context.Context, trigger time.Time) error {
			_, err := digest.Send(ctx, trigger)
			return err
		},
	}
}

// Start registers every job with its driver.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, job := range s.jobs {
		run := func(trigger time.Time) {
			if err := job.Run(ctx, trigger); err != nil && s.logger != nil {
				s.logger.Error("scheduled job failed", "job", job.Name, "err", err)
			}
		}
		if err := job.Driver.Start(ctx, run); err != nil {
			return err
		}
		if s.logger != nil {
			s.logger.Info("scheduled job registered", "job", job.Name)
		}
	}
	return nil
}

// Stop gracefully tears down the underlying drivers.
func (s *Scheduler) Stop(ctx context.Context) error {
	var firstErr error
	for _, job := range s.jobs {
		if err := job.Driver.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
