package sensor

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// TestMillisCounter tests that the counter follows the injected clock.
func TestMillisCounter(t *testing.T) {
	mock := clock.NewMock()
	counter := NewMillisCounter(mock)

	if got := counter.Millis(); got != 0 {
		t.Errorf("Millis at start = %d, want 0", got)
	}
	mock.Add(1500 * time.Millisecond)
	if got := counter.Millis(); got != 1500 {
		t.Errorf("Millis after 1.5s = %d, want 1500", got)
	}
	mock.Add(250 * time.Microsecond)
	if got := counter.Millis(); got != 1500 {
		t.Errorf("sub-millisecond advance should truncate, got %d", got)
	}
}

// TestSourceFunc tests the function adapter.
func TestSourceFunc(t *testing.T) {
	var src Source = SourceFunc(func(channel int) (int, error) {
		return channel * 2, nil
	})
	v, err := src.Read(21)
	if err != nil || v != 42 {
		t.Errorf("Read(21) = %d, %v; want 42, nil", v, err)
	}
}
