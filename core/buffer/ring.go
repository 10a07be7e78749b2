// Package buffer provides the fixed-capacity FIFO containers that bound the
// memory of every online model in edgeml.
//
// A Ring owns all of its slots from construction onwards. Pushing into a full
// ring overwrites the oldest slot in place, so steady-state training performs
// no allocation.
package buffer

import (
	"iter"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// Ring is a bounded FIFO over preallocated slots.
type Ring[T any] struct {
	slots []T
	head  int // index of the oldest element
	size  int
}

// NewRing returns a ring with room for capacity elements. If init is not nil
// it is called once per slot, which lets callers attach per-slot backing
// storage up front.
func NewRing[T any](capacity int, init func(slot *T)) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, errors.NewValidationError("capacity", "must be positive", capacity)
	}
	r := &Ring[T]{slots: make([]T, capacity)}
	if init != nil {
		for i := range r.slots {
			init(&r.slots[i])
		}
	}
	return r, nil
}

// Push claims the next slot and hands it to fill. When the ring is full the
// oldest element's slot is reused and evicted reports true.
func (r *Ring[T]) Push(fill func(slot *T)) (evicted bool) {
	var idx int
	if r.size == len(r.slots) {
		idx = r.head
		r.head = (r.head + 1) % len(r.slots)
		evicted = true
	} else {
		idx = (r.head + r.size) % len(r.slots)
		r.size++
	}
	fill(&r.slots[idx])
	return evicted
}

// At returns the i-th element, 0 being the oldest. It panics when i is out of
// [0, Len()).
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic(errors.Newf("buffer: index %d out of range [0, %d)", i, r.size))
	}
	return r.slots[(r.head+i)%len(r.slots)]
}

// All iterates from oldest to newest.
func (r *Ring[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < r.size; i++ {
			if !yield(i, r.slots[(r.head+i)%len(r.slots)]) {
				return
			}
		}
	}
}

// Len returns the number of resident elements.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.slots) }

// IsFull reports whether the next Push evicts.
func (r *Ring[T]) IsFull() bool { return r.size == len(r.slots) }

// IsEmpty reports whether the ring holds nothing.
func (r *Ring[T]) IsEmpty() bool { return r.size == 0 }

// Clear forgets every element. Slots keep their backing storage.
func (r *Ring[T]) Clear() {
	r.head = 0
	r.size = 0
}
