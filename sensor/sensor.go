// Package sensor defines the acquisition and timing capabilities that models
// consume. edgeml never talks to hardware: applications inject a Source that
// reads a channel and a TickCounter that reports elapsed milliseconds.
package sensor

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Source reads one integer sample from an input channel, such as an ADC pin.
type Source interface {
	Read(channel int) (int, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(channel int) (int, error)

// Read calls f(channel).
func (f SourceFunc) Read(channel int) (int, error) { return f(channel) }

// TickCounter reports a monotonic millisecond count.
type TickCounter interface {
	Millis() int64
}

// MillisCounter counts milliseconds since its creation on a clock.Clock.
type MillisCounter struct {
	clk   clock.Clock
	start time.Time
}

// NewMillisCounter starts counting on clk. A nil clk uses the wall clock.
func NewMillisCounter(clk clock.Clock) *MillisCounter {
	if clk == nil {
		clk = clock.New()
	}
	return &MillisCounter{clk: clk, start: clk.Now()}
}

// Millis returns the milliseconds elapsed since the counter was created.
func (m *MillisCounter) Millis() int64 {
	return m.clk.Since(m.start).Milliseconds()
}
