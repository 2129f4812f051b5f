// Package schedule runs the examples pass at a fixed interval.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/exrunner/internal/logfields"
)

const jobName = "examples-pass"

// Scheduler wraps gocron scheduler for the periodic pass.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// SchedulePass registers pass to run every interval, starting immediately.
// Singleton mode keeps a slow pass from overlapping the next tick.
// Returns the job ID for later management.
func (s *Scheduler) SchedulePass(ctx context.Context, interval time.Duration, pass func(context.Context)) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("interval must be positive, got %s", interval)
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			slog.Info("Executing scheduled pass", slog.String("job", jobName))
			pass(ctx)
		}),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic pass job: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler, waiting for a running pass.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// Run schedules pass every interval and blocks until ctx is cancelled.
func Run(ctx context.Context, interval time.Duration, pass func(context.Context)) error {
	s, err := NewScheduler()
	if err != nil {
		return err
	}
	id, err := s.SchedulePass(ctx, interval, pass)
	if err != nil {
		_ = s.Stop()
		return err
	}
	slog.Info("Scheduled examples pass", logfields.ScheduleID(id), slog.Duration("interval", interval))

	s.Start()
	<-ctx.Done()
	return s.Stop()
}
