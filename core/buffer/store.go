package buffer

import (
	"iter"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// Sample is one labeled training example. Features is a view into the store's
// arena and is overwritten when the slot is reused; copy it to keep it.
type Sample struct {
	Features []int
	Label    int
}

// SampleStore is a bounded FIFO of labeled samples. Feature vectors are copied
// into one arena of capacity*numFeatures ints allocated at construction.
type SampleStore struct {
	ring        *Ring[Sample]
	numFeatures int
	evictions   int64
}

// NewSampleStore returns an empty store for vectors of numFeatures entries.
func NewSampleStore(capacity, numFeatures int) (*SampleStore, error) {
	if numFeatures <= 0 {
		return nil, errors.NewValidationError("numFeatures", "must be positive", numFeatures)
	}
	if capacity <= 0 {
		return nil, errors.NewValidationError("capacity", "must be positive", capacity)
	}
	arena := make([]int, capacity*numFeatures)
	next := 0
	ring, err := NewRing(capacity, func(s *Sample) {
		s.Features = arena[next : next+numFeatures : next+numFeatures]
		next += numFeatures
	})
	if err != nil {
		return nil, err
	}
	return &SampleStore{ring: ring, numFeatures: numFeatures}, nil
}

// Push copies features into the store. On a full store the oldest sample is
// evicted. A vector of the wrong length is rejected before anything changes.
func (s *SampleStore) Push(features []int, label int) (evicted bool, err error) {
	if len(features) != s.numFeatures {
		return false, errors.NewDimensionError("SampleStore.Push", s.numFeatures, len(features), 1)
	}
	evicted = s.ring.Push(func(slot *Sample) {
		copy(slot.Features, features)
		slot.Label = label
	})
	if evicted {
		s.evictions++
	}
	return evicted, nil
}

// At returns the i-th sample, 0 being the oldest.
func (s *SampleStore) At(i int) Sample { return s.ring.At(i) }

// All iterates from oldest to newest.
func (s *SampleStore) All() iter.Seq2[int, Sample] { return s.ring.All() }

// Len returns the number of resident samples.
func (s *SampleStore) Len() int { return s.ring.Len() }

// Cap returns the fixed capacity.
func (s *SampleStore) Cap() int { return s.ring.Cap() }

// IsFull reports whether the next Push evicts the oldest sample.
func (s *SampleStore) IsFull() bool { return s.ring.IsFull() }

// IsEmpty reports whether the store holds no samples.
func (s *SampleStore) IsEmpty() bool { return s.ring.IsEmpty() }

// NumFeatures returns the feature vector length.
func (s *SampleStore) NumFeatures() int { return s.numFeatures }

// Evictions returns how many samples were dropped since construction or the
// last Clear.
func (s *SampleStore) Evictions() int64 { return s.evictions }

// Clear empties the store without releasing the arena.
func (s *SampleStore) Clear() {
	s.ring.Clear()
	s.evictions = 0
}
