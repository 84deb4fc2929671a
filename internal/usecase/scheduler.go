package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"EconomyNewsletter/internal/ports"
)

// Scheduler wires the daily driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	logger   *slog.Logger
	results  chan<- Result
}

// NewScheduler returns a helper to start/stop recurring editions. When
// results is non-nil every run's Result is sent to it.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, logger *slog.Logger, results chan<- Result) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{driver: driver, pipeline: pipeline, logger: logger, results: results}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		result := s.pipeline.ProcessDay(ctx, trigger)
		if result.Status != StatusSuccess {
			s.logger.Error("scheduled edition failed", "run_id", result.RunID, "error", result.Error)
		} else {
			s.logger.Info("scheduled edition done", "run_id", result.RunID, "newsletter", result.Newsletter)
		}
		if s.results != nil {
			select {
			case s.results <- result:
			case <-ctx.Done():
			}
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
