package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"courtmap/dashboard/pkg/teams"
)

// Refresher reloads data. *teams.Catalog implements it.
type Refresher interface {
	Refresh(ctx context.Context) (*teams.RefreshResult, error)
}

// Scheduler refreshes a catalog on a schedule.
type Scheduler struct {
	target   Refresher
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool

	// entry and stopped belong to the current run
	entry   cron.EntryID
	stopped chan struct{}
}

// NewScheduler creates a scheduler. schedule is a cron expression or
// descriptor; see Schedule for building one from an interval.
func NewScheduler(target Refresher, schedule string) *Scheduler {
	return &Scheduler{
		target:   target,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "teams.refresh.scheduler"),
	}
}

// Schedule returns expr when set, otherwise an "@every" descriptor for
// interval. It returns "" when neither is usable.
func Schedule(expr string, interval time.Duration) string {
	if expr != "" {
		return expr
	}
	if interval <= 0 {
		return ""
	}
	return "@every " + interval.String()
}

// Start schedules refreshes until ctx is cancelled or Stop is called.
// If the schedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("refresh schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	entry, err := s.cron.AddFunc(s.schedule, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.entry = entry
	s.stopped = make(chan struct{})

	s.logger.Info("refresh scheduler started", "schedule", s.schedule)

	go func(stopped <-chan struct{}) {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stopped:
		}
	}(s.stopped)

	return nil
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	s.logger.Debug("starting scheduled data refresh")

	res, err := s.target.Refresh(ctx)
	if err != nil {
		s.logger.Error("scheduled refresh failed", "error", err)
		return
	}

	s.logger.Info("scheduled refresh completed",
		"teams", res.Teams,
		"origin", res.Origin,
	)
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.cron.Remove(s.entry)
		close(s.stopped)
		s.running = false
		s.logger.Info("refresh scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled refresh time, or nil when idle.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if !s.running || len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
