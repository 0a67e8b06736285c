// Package health implements liveness and readiness probes.
//
// Components register named check functions (monsoon provider, archive,
// research client); readiness aggregates them concurrently and degrades to
// 503 when any fails. Liveness never calls out and always succeeds while
// the process runs.
package health
