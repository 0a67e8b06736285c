// Package middleware provides the HTTP middleware chain for the API
// server: panic recovery, request logging with metrics, request IDs, CORS
// and per-request timeouts.
//
// Order matters. Recovery wraps everything so a panic in any later layer
// still produces a well-formed error response; the timeout layer is applied
// per-route by the server, because the analysis stream must outlive any
// fixed handler deadline.
package middleware
