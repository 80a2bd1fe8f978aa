package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"churchthreads.app/api/common/logger"
)

// InviteRetention is how long expired invites are kept for the admin list.
const InviteRetention = 30 * 24 * time.Hour

// Sweeper runs periodic cleanup on a cron schedule.
type Sweeper struct {
	stores StoreProvider
	cron   *cron.Cron
	now    func() time.Time
}

func NewSweeper(stores StoreProvider) *Sweeper {
	return &Sweeper{
		stores: stores,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		now: time.Now,
	}
}

// Run schedules the sweeps and blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "churchthreads.worker.sweeper",
	})

	if _, err := s.cron.AddFunc("@hourly", func() { s.run(ctx, "sessions", s.SweepSessions) }); err != nil {
		return fmt.Errorf("scheduling session sweep: %w", err)
	}
	if _, err := s.cron.AddFunc("@daily", func() { s.run(ctx, "invites", s.SweepInvites) }); err != nil {
		return fmt.Errorf("scheduling invite sweep: %w", err)
	}

	s.cron.Start()
	slog.InfoContext(ctx, "sweeper started", "jobs", len(s.cron.Entries()))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	slog.InfoContext(ctx, "sweeper stopped")
	return nil
}

func (s *Sweeper) run(ctx context.Context, name string, sweep func(context.Context) (int64, error)) {
	start := time.Now()
	n, err := sweep(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "sweep failed", "sweep", name, "error", err)
		return
	}
	slog.InfoContext(ctx, "sweep finished",
		"sweep", name,
		"deleted", n,
		"duration_ms", time.Since(start).Milliseconds())
}

// SweepSessions deletes expired login sessions.
func (s *Sweeper) SweepSessions(ctx context.Context) (int64, error) {
	n, err := s.stores.Sessions().DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return n, nil
}

// SweepInvites deletes invites that expired more than InviteRetention ago.
func (s *Sweeper) SweepInvites(ctx context.Context) (int64, error) {
	n, err := s.stores.Invites().DeleteExpiredBefore(ctx, s.now().Add(-InviteRetention))
	if err != nil {
		return 0, fmt.Errorf("deleting expired invites: %w", err)
	}
	return n, nil
}
