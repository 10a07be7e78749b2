package linear

import (
	"github.com/YuminosukeSato/edgeml/pkg/log"
	"github.com/YuminosukeSato/edgeml/sensor"
)

// Option is a function that configures StreamingRegression
type Option func(*StreamingRegression)

// WithIncrementalSums keeps exact integer running sums updated on every Add and eviction
// instead of recomputing them from the stored points in Calculate.
func WithIncrementalSums() Option {
	return func(r *StreamingRegression) {
		r.incremental = true
	}
}

// WithTickCounter sets the counter used by AcquireTimed and PredictNow
func WithTickCounter(ticks sensor.TickCounter) Option {
	return func(r *StreamingRegression) {
		r.ticks = ticks
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(r *StreamingRegression) {
		r.logger = logger
	}
}
