package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"churchthreads.app/api/common/logger"
	"churchthreads.app/api/common/metrics"
	"churchthreads.app/api/internal/queue"
)

type DispatcherConfig struct {
	Interval  time.Duration
	BatchSize int
}

// Dispatcher moves due email jobs from the scheduler onto the task stream.
type Dispatcher struct {
	scheduler Scheduler
	producer  queue.Producer
	cfg       DispatcherConfig
	now       func() time.Time
}

func NewDispatcher(scheduler Scheduler, producer queue.Producer, cfg DispatcherConfig) *Dispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Dispatcher{
		scheduler: scheduler,
		producer:  producer,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "churchthreads.notify.dispatcher",
	})

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "dispatcher started",
		"interval", d.cfg.Interval,
		"batch_size", d.cfg.BatchSize)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "dispatcher stopping")
			return nil
		case <-ticker.C:
			d.cycle(ctx)
		}
	}
}

func (d *Dispatcher) cycle(ctx context.Context) {
	sc := logger.StartSpan(ctx, "notify.dispatch")
	defer sc.End()

	if _, err := d.DispatchDue(sc.Context()); err != nil {
		sc.RecordError(err)
		slog.ErrorContext(sc.Context(), "dispatch cycle error", "error", err)
	}
}

// DispatchDue drains every job that is due now and returns how many were
// enqueued. A job that cannot be enqueued is put back for the next cycle.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	dispatched := 0
	for {
		jobs, err := d.scheduler.ClaimDue(ctx, d.now(), d.cfg.BatchSize)
		if err != nil {
			return dispatched, err
		}

		for i, job := range jobs {
			if err := d.enqueue(ctx, job); err != nil {
				slog.ErrorContext(ctx, "failed to enqueue email job, restoring batch",
					"error", err,
					"job_key", job.Key,
					"remaining", len(jobs)-i)
				d.restore(ctx, jobs[i:])
				metrics.RecordNotificationsDispatched(dispatched)
				return dispatched, fmt.Errorf("enqueueing job %s: %w", job.Key, err)
			}
			dispatched++
		}

		if len(jobs) < d.cfg.BatchSize {
			break
		}
	}

	if dispatched > 0 {
		slog.InfoContext(ctx, "dispatched email jobs", "count", dispatched)
		metrics.RecordNotificationsDispatched(dispatched)
	}
	return dispatched, nil
}

func (d *Dispatcher) restore(ctx context.Context, jobs []Job) {
	for _, job := range jobs {
		if err := d.scheduler.Restore(ctx, job); err != nil {
			slog.ErrorContext(ctx, "failed to restore email job",
				"error", err,
				"job_key", job.Key)
		}
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, job Job) error {
	task := queue.Task{
		TaskType:         queue.TaskTypeEmailNotification,
		OrgID:            job.OrgID,
		NotificationType: string(job.Type),
		JobKey:           job.DispatchKey(),
		RecipientIDs:     job.RecipientIDs,
		Data:             job.Data,
	}
	if job.TraceID != "" {
		task.TraceID = &job.TraceID
	}
	return d.producer.Enqueue(ctx, task)
}
