package monsoon

import (
	"context"
	"testing"
	"time"
)

func schedulerMonitor() *Monitor {
	provider := &fakeProvider{data: metricsForTest()}
	return NewMonitor(provider, 2020, discardLogger())
}

func TestSchedulerStartAndStop(t *testing.T) {
	scheduler := NewScheduler(schedulerMonitor(), "* * * * *", nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !scheduler.IsRunning() {
		t.Error("Expected scheduler running after Start")
	}
	if next := scheduler.NextRun(); next == nil {
		t.Error("Expected a next run time while running")
	} else if time.Until(*next) > time.Minute+time.Second {
		t.Errorf("Next run too far out: %v", next)
	}

	scheduler.Stop()
	if scheduler.IsRunning() {
		t.Error("Expected scheduler stopped after Stop")
	}
}

func TestSchedulerEmptyScheduleIsDisabled(t *testing.T) {
	scheduler := NewScheduler(schedulerMonitor(), "", nil, discardLogger())

	if err := scheduler.Start(context.Background()); err != nil {
		t.Fatalf("Start with empty schedule failed: %v", err)
	}
	if scheduler.IsRunning() {
		t.Error("Expected scheduler inactive with empty schedule")
	}
	if next := scheduler.NextRun(); next != nil {
		t.Errorf("Expected no next run, got %v", next)
	}
}

func TestSchedulerRejectsInvalidSchedule(t *testing.T) {
	scheduler := NewScheduler(schedulerMonitor(), "not a cron line", nil, discardLogger())

	if err := scheduler.Start(context.Background()); err == nil {
		t.Fatal("Expected error for invalid cron expression")
	}
	if scheduler.IsRunning() {
		t.Error("Scheduler must not run after a failed Start")
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	scheduler := NewScheduler(schedulerMonitor(), "* * * * *", nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for scheduler.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if scheduler.IsRunning() {
		t.Error("Expected scheduler to stop after context cancellation")
	}
}

func TestSchedulerOnScanReceivesResults(t *testing.T) {
	monitor := schedulerMonitor()

	var got *ScanResult
	scheduler := NewScheduler(monitor, "* * * * *", func(res *ScanResult) {
		got = res
	}, discardLogger())

	// Drive the scan directly rather than waiting out a cron minute.
	scheduler.runScan(context.Background())

	if got == nil {
		t.Fatal("Expected onScan invoked with a result")
	}
	if got.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", got.Status)
	}
}
