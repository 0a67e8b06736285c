// Package server assembles the HTTP API: routes, middleware chain,
// graceful lifecycle and optional TLS.
//
// The analysis stream route sits outside the per-request timeout wrapper
// and the server runs without a write timeout by default, because the
// NDJSON stream writes for the whole lifetime of an analysis.
package server
