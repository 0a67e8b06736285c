package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MonsoonMetrics tracks the hazard monitor.
//
// Metrics:
//   - indra_api_monsoon_scans_total: scan count by status
//   - indra_api_monsoon_deviation_percent: seasonal deviation gauge
//   - indra_api_monsoon_onset_delay_days: onset delay gauge
//   - indra_api_monsoon_active_alerts: active alert count gauge
type MonsoonMetrics struct {
	scansTotal       *prometheus.CounterVec
	deviationPercent prometheus.Gauge
	onsetDelayDays   prometheus.Gauge
	activeAlerts     prometheus.Gauge
}

// NewMonsoonMetrics creates and registers monsoon monitor metrics.
func NewMonsoonMetrics(cfg Config, registry *prometheus.Registry) *MonsoonMetrics {
	mm := &MonsoonMetrics{
		scansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "monsoon_scans_total",
				Help:      "Total number of monsoon hazard scans",
			},
			[]string{"status"},
		),

		deviationPercent: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "monsoon_deviation_percent",
				Help:      "Rainfall deviation from the long period average for the focus year",
			},
		),

		onsetDelayDays: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "monsoon_onset_delay_days",
				Help:      "Monsoon onset delay in days for the focus year",
			},
		),

		activeAlerts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "monsoon_active_alerts",
				Help:      "Number of currently active hazard alerts",
			},
		),
	}

	registry.MustRegister(
		mm.scansTotal,
		mm.deviationPercent,
		mm.onsetDelayDays,
		mm.activeAlerts,
	)

	return mm
}

// RecordScan records one scan. Gauges only move on healthy scans so a
// degraded provider does not zero out the last known season.
func (mm *MonsoonMetrics) RecordScan(status string, deviationPercent float64, onsetDelayDays, activeAlerts int) {
	mm.scansTotal.WithLabelValues(status).Inc()

	if status == "healthy" {
		mm.deviationPercent.Set(deviationPercent)
		mm.onsetDelayDays.Set(float64(onsetDelayDays))
		mm.activeAlerts.Set(float64(activeAlerts))
	}
}
