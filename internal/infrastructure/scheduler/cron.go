package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"techpulse/internal/ports"
)

// IntervalScheduler runs a job on every tick of a fixed interval, and
// optionally once right at Start.
type IntervalScheduler struct {
	interval   time.Duration
	runOnStart bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler ticking every interval. With
// runOnStart the job also fires immediately instead of waiting a full interval.
func NewIntervalScheduler(interval time.Duration, runOnStart bool) *IntervalScheduler {
	return &IntervalScheduler{interval: interval, runOnStart: runOnStart}
}

// Start begins ticking. Jobs never overlap; a tick that fires during a
// long job is dropped by the ticker.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		if s.runOnStart {
			job(time.Now())
		}
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine and waits for a running job to return.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
