package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false every Record call is a
	// no-op and the handler serves an empty registry.
	Enabled bool

	// Namespace is the metric name prefix. Default "indra".
	Namespace string

	// Subsystem is the second metric name segment. Default "api".
	Subsystem string

	// RequestDurationBuckets are the histogram buckets for HTTP request
	// durations in seconds.
	RequestDurationBuckets []float64
}

// Collector orchestrates all Prometheus metrics for the service. It owns a
// private registry and pre-registers every metric at construction, so
// recording is allocation-free on the hot path.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	requestMetrics  *RequestMetrics
	analysisMetrics *AnalysisMetrics
	monsoonMetrics  *MonsoonMetrics
}

// NewCollector creates a collector with its own registry. If registry is
// nil a fresh one is created.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "indra"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "api"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// Streaming analyses run seconds; plain endpoints run milliseconds.
		cfg.RequestDurationBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}
	c.requestMetrics = NewRequestMetrics(cfg, registry)
	c.analysisMetrics = NewAnalysisMetrics(cfg, registry)
	c.monsoonMetrics = NewMonsoonMetrics(cfg, registry)
	return c
}

// RecordRequest records one completed HTTP request.
func (c *Collector) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordRequest(method, route, statusCode, duration)
}

// RequestStarted marks a request as in flight.
func (c *Collector) RequestStarted() {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.IncInFlight()
}

// RequestFinished marks an in-flight request as done.
func (c *Collector) RequestFinished() {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.DecInFlight()
}

// RecordAnalysis records the outcome of one intervention analysis. It
// satisfies the pipeline's recorder contract.
func (c *Collector) RecordAnalysis(mechanism, status string, score float64, livesSaved int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.analysisMetrics.RecordAnalysis(mechanism, status, score, livesSaved, duration)
}

// RecordMonsoonScan records one monitor scan and refreshes the seasonal
// gauges.
func (c *Collector) RecordMonsoonScan(status string, deviationPercent float64, onsetDelayDays, activeAlerts int) {
	if !c.config.Enabled {
		return
	}
	c.monsoonMetrics.RecordScan(status, deviationPercent, onsetDelayDays, activeAlerts)
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
