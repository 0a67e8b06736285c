// Package logging configures the process-wide structured logger.
//
// The logger is log/slog with a configurable level and output format, plus
// a handler wrapper that stamps every record with identifiers carried in
// the request context (request ID). All packages receive a plain
// *slog.Logger; nothing in the module logs through a bespoke interface.
package logging
