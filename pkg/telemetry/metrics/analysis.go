package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalysisMetrics tracks intervention analysis outcomes.
//
// Metrics:
//   - indra_api_analyses_total: analysis count by mechanism and status
//   - indra_api_analysis_duration_seconds: end-to-end analysis duration
//   - indra_api_analysis_effectiveness: last effectiveness score per mechanism
//   - indra_api_analysis_lives_saved: lives saved histogram
type AnalysisMetrics struct {
	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	effectiveness    *prometheus.GaugeVec
	livesSaved       prometheus.Histogram
}

// NewAnalysisMetrics creates and registers analysis metrics.
func NewAnalysisMetrics(cfg Config, registry *prometheus.Registry) *AnalysisMetrics {
	am := &AnalysisMetrics{
		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analyses_total",
				Help:      "Total number of intervention analyses run",
			},
			[]string{"mechanism", "status"},
		),

		analysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_duration_seconds",
				Help:      "End-to-end duration of intervention analyses in seconds",
				Buckets:   []float64{0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"mechanism"},
		),

		effectiveness: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_effectiveness",
				Help:      "Effectiveness score of the most recent analysis per mechanism",
			},
			[]string{"mechanism"},
		),

		livesSaved: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_lives_saved",
				Help:      "Estimated lives saved per completed analysis",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}

	registry.MustRegister(
		am.analysesTotal,
		am.analysisDuration,
		am.effectiveness,
		am.livesSaved,
	)

	return am
}

// RecordAnalysis records one analysis outcome. Score and lives gauges are
// only touched for completed analyses; failed runs still count and time.
func (am *AnalysisMetrics) RecordAnalysis(mechanism, status string, score float64, livesSaved int, duration time.Duration) {
	if mechanism == "" {
		mechanism = "unknown"
	}
	am.analysesTotal.WithLabelValues(mechanism, status).Inc()
	am.analysisDuration.WithLabelValues(mechanism).Observe(duration.Seconds())

	if status == "ok" {
		am.effectiveness.WithLabelValues(mechanism).Set(score)
		am.livesSaved.Observe(float64(livesSaved))
	}
}
