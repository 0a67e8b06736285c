// Package tracks models the baseline hazard-track collection and the decay
// transform that simulates an intervention's impact on it.
//
// The baseline is loaded once from a GeoJSON FeatureCollection and is
// read-only for the lifetime of the process; mitigation always produces a
// fresh collection and never mutates the baseline.
package tracks
