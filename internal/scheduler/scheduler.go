package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/zhaomaota/word-stone/internal/worker"
)

// Log messages
const (
	LogMsgEnqueueFailed = "Failed to enqueue scheduled job"
	LogMsgJobScheduled  = "Scheduled periodic job"
)

// Scheduler fires jobs on fixed intervals and hands them to the worker pool
type Scheduler struct {
	cron       *gocron.Scheduler
	workerPool *worker.Pool
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	cron := gocron.NewScheduler(time.UTC)
	cron.SingletonModeAll()
	return &Scheduler{
		cron:       cron,
		workerPool: pool,
	}
}

// Schedule registers a job to be enqueued every interval. The first run
// happens one interval after Start.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s for job %s", interval, name)
	}
	_, err := s.cron.Every(interval).WaitForSchedule().Tag(name).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		if err := s.workerPool.Enqueue(ctx, job); err != nil {
			slog.Default().Warn(LogMsgEnqueueFailed, "job", name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	slog.Default().Info(LogMsgJobScheduled, "job", name, "interval", interval)
	return nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
