package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one unit of scheduled work, typically a watcher run.
type Job func(ctx context.Context) error

// Scheduler owns the main loop: an immediate first run, then ticks on an
// interval. The loop guarantees at most one run at a time, which is what lets
// the seen-state store skip locking.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *slog.Logger
}

// New creates a scheduler that invokes job every interval.
func New(job Job, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate cycle, then ticks on the
// configured interval. Job errors are logged, never fatal; the next tick is
// the retry. Returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled run failed", "error", err, "elapsed", time.Since(start).String())
		return
	}
	s.logger.Info("scheduled run complete", "elapsed", time.Since(start).String())
}
