package monsoon

import (
	"context"
	"errors"
)

// ErrYearUnavailable is returned when a provider has no data for the
// requested year.
var ErrYearUnavailable = errors.New("monsoon data unavailable for year")

// Provider supplies seasonal metrics keyed by year. Implementations must be
// safe for concurrent use; the focus year is always passed explicitly so
// providers carry no request state.
type Provider interface {
	// Scan returns the metrics packet for the given year, or
	// ErrYearUnavailable when the year is unknown.
	Scan(ctx context.Context, year int) (*Metrics, error)

	// HealthCheck reports whether the provider can currently serve data.
	HealthCheck(ctx context.Context) error

	// Name identifies the provider in logs and health output.
	Name() string
}
