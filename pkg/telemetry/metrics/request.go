package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks HTTP request processing.
//
// Metrics:
//   - indra_api_requests_total: request count by method, route, status code
//   - indra_api_request_duration_seconds: request duration histogram
//   - indra_api_requests_in_flight: concurrent requests gauge
type RequestMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// NewRequestMetrics creates and registers request metrics.
func NewRequestMetrics(cfg Config, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method", "route"},
		),

		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.requestsInFlight,
	)

	return rm
}

// RecordRequest records one completed request.
func (rm *RequestMetrics) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	rm.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncInFlight marks a request as started.
func (rm *RequestMetrics) IncInFlight() {
	rm.requestsInFlight.Inc()
}

// DecInFlight marks a request as finished.
func (rm *RequestMetrics) DecInFlight() {
	rm.requestsInFlight.Dec()
}
