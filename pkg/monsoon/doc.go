// Package monsoon watches seasonal rainfall metrics for a focus year and
// raises hazard alerts when the season deviates from climatological norms.
//
// The monitor is independent of the intervention analysis pipeline: it reads
// from a metrics provider (scenario file or archive), applies fixed alert
// rules, and serves the active alert set. The focus year can be switched at
// runtime without restarting the service.
package monsoon
