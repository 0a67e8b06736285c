package monsoon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs monitor scans on a cron schedule so alert state stays
// current without client traffic.
type Scheduler struct {
	monitor  *Monitor
	schedule string
	onScan   func(*ScanResult)
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scan scheduler. onScan, if non-nil, is invoked
// after every scheduled scan (used to refresh gauges).
func NewScheduler(monitor *Monitor, schedule string, onScan func(*ScanResult), logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		monitor:  monitor,
		schedule: schedule,
		onScan:   onScan,
		cron:     cron.New(),
		logger:   logger.With("component", "monsoon.scheduler"),
	}
}

// Start begins scheduled scanning. An empty schedule disables the
// scheduler. The scheduler stops itself when the context is cancelled.
//
// Common cron expressions:
//   - "* * * * *"    - Every minute
//   - "*/5 * * * *"  - Every 5 minutes
//   - "0 6 * * *"    - Daily at 6 AM
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("scan schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runScan(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule monsoon scan: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("monsoon scan scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runScan(ctx context.Context) {
	// Monitor logs scan failures itself; degraded results still reach
	// onScan so scan counters track every attempt.
	result, _ := s.monitor.Scan(ctx)
	if result != nil && s.onScan != nil {
		s.onScan(result)
	}
}

// Stop stops the scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.running = false
		s.logger.Info("monsoon scan scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled scan time, if any.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
