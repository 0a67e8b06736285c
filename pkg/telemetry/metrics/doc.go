// Package metrics exposes Prometheus metrics for the service.
//
// A single Collector owns a private registry and fans recording calls out
// to per-concern metric groups: HTTP requests, intervention analyses and
// monsoon scans. The /metrics endpoint is served from the same registry, so
// nothing leaks into the default global registry and tests can assert on a
// fresh Collector.
package metrics
