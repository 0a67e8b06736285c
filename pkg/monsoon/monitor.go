package monsoon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Alert thresholds. Deviation is percent of the long period average;
// negative values are deficits.
const (
	deficitHighThreshold     = -10.0
	deficitCriticalThreshold = -15.0
	onsetDelayThresholdDays  = 7
)

// streamID tags alerts with the stream family they belong to.
const streamID = "climate"

// Monitor evaluates the focus year's seasonal metrics against the alert
// rules and holds the active alert set. The focus year is swapped
// atomically; concurrent writers are last-writer-wins. Each scan replaces
// the alert set wholesale, so resolved conditions clear their alerts.
type Monitor struct {
	provider    Provider
	logger      *slog.Logger
	defaultYear int

	focusYear atomic.Int64

	mu     sync.RWMutex
	alerts []Alert
}

// NewMonitor creates a monitor over the provider with the given initial
// focus year.
func NewMonitor(provider Provider, defaultYear int, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Monitor{
		provider:    provider,
		logger:      logger,
		defaultYear: defaultYear,
	}
	m.focusYear.Store(int64(defaultYear))
	return m
}

// FocusYear returns the current focus year.
func (m *Monitor) FocusYear() int {
	return int(m.focusYear.Load())
}

// SetFocusYear switches the simulated current year.
func (m *Monitor) SetFocusYear(year int) {
	m.focusYear.Store(int64(year))
	m.logger.Info("monsoon focus year switched", "year", year)
}

// ActiveAlerts returns a copy of the alert set from the most recent scan.
func (m *Monitor) ActiveAlerts() []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Alert(nil), m.alerts...)
}

// Current returns the metrics packet for the focus year without altering
// the alert set. A focus year the provider does not know falls back to
// the default year's packet.
func (m *Monitor) Current(ctx context.Context) (*Metrics, error) {
	year := m.FocusYear()
	metrics, err := m.provider.Scan(ctx, year)
	if errors.Is(err, ErrYearUnavailable) && year != m.defaultYear {
		m.logger.Warn("no monsoon data for focus year, serving default",
			"year", year,
			"default_year", m.defaultYear,
		)
		return m.provider.Scan(ctx, m.defaultYear)
	}
	return metrics, err
}

// Scan fetches the focus year's metrics, applies the alert rules and
// replaces the active alert set. A provider failure degrades the result
// and leaves the previous alerts in place.
func (m *Monitor) Scan(ctx context.Context) (*ScanResult, error) {
	year := m.FocusYear()

	metrics, err := m.provider.Scan(ctx, year)
	if err != nil {
		m.logger.Error("monsoon scan failed",
			"provider", m.provider.Name(),
			"year", year,
			"error", err,
		)
		return &ScanResult{Status: StatusDegraded, Alerts: m.ActiveAlerts()}, err
	}

	alerts := evaluate(metrics, time.Now().UTC())

	m.mu.Lock()
	m.alerts = alerts
	m.mu.Unlock()

	m.logger.Info("monsoon scan complete",
		"year", metrics.Year,
		"deviation_percent", metrics.DeviationPercent,
		"onset_delay_days", metrics.OnsetDelayDays(),
		"active_alerts", len(alerts),
	)

	return &ScanResult{
		Status:  StatusHealthy,
		Metrics: metrics,
		Alerts:  alerts,
	}, nil
}

// evaluate applies the alert rules to one metrics packet. A rainfall
// deficit raises a single alert whose severity escalates with the deficit;
// a late onset raises a separate medium alert.
func evaluate(metrics *Metrics, now time.Time) []Alert {
	alerts := []Alert{}

	deviation := metrics.DeviationPercent
	if deviation < deficitHighThreshold {
		severity := SeverityHigh
		if deviation < deficitCriticalThreshold {
			severity = SeverityCritical
		}
		alerts = append(alerts, Alert{
			ID:        deficitAlertID(metrics.Year),
			StreamIDs: []string{streamID},
			Severity:  severity,
			Message: fmt.Sprintf(
				"Critical Monsoon Deficit: %g%% below LPA. Agricultural impact imminent.",
				deviation,
			),
			CreatedAt: now,
			Context: map[string]any{
				"deviation":  deviation,
				"impact_est": "High",
			},
		})
	}

	if delay := metrics.OnsetDelayDays(); delay > onsetDelayThresholdDays {
		alerts = append(alerts, Alert{
			ID:        onsetDelayAlertID(metrics.Year),
			StreamIDs: []string{streamID},
			Severity:  SeverityMedium,
			Message: fmt.Sprintf(
				"Monsoon Onset Delayed by %d days. Sowing windows at risk.",
				delay,
			),
			CreatedAt: now,
			Context: map[string]any{
				"delay_days": delay,
			},
		})
	}

	return alerts
}
