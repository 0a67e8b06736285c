// Package handlers implements the API's HTTP handlers: the NDJSON
// intervention analysis stream, the baseline track dataset, and the monsoon
// monitor endpoints (current status, focus-year control, historical lookup
// and on-demand scan).
package handlers
