// Package neighbors implements a memory-bounded k-nearest-neighbors classifier
// over integer feature vectors.
package neighbors

import (
	"cmp"
	"context"
	"slices"

	"github.com/YuminosukeSato/edgeml/core/buffer"
	"github.com/YuminosukeSato/edgeml/core/model"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
)

// Unknown is returned by Predict when no training data is stored.
const Unknown = model.Unknown

type neighbor struct {
	distance float64
	label    int
}

// KNNClassifier stores at most maxDataPoints labeled samples and classifies by
// majority vote among the k closest ones (squared Euclidean distance). When
// full, the oldest sample is evicted to admit a new one.
type KNNClassifier struct {
	model.BaseEstimator

	numFeatures int
	k           int
	store       *buffer.SampleStore
	scratch     []neighbor
	logger      log.Logger
}

var _ model.Classifier = (*KNNClassifier)(nil)

// Option configures a KNNClassifier.
type Option func(*KNNClassifier)

// WithLogger sets the logger used for eviction and prediction diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *KNNClassifier) {
		c.logger = logger
	}
}

// NewKNNClassifier returns an empty classifier. All sample and scratch memory
// is allocated here.
func NewKNNClassifier(numFeatures, k, maxDataPoints int, opts ...Option) (*KNNClassifier, error) {
	if k <= 0 {
		return nil, errors.NewValidationError("k", "must be positive", k)
	}
	store, err := buffer.NewSampleStore(maxDataPoints, numFeatures)
	if err != nil {
		return nil, errors.Wrap(err, "NewKNNClassifier")
	}

	c := &KNNClassifier{
		numFeatures: numFeatures,
		k:           k,
		store:       store,
		scratch:     make([]neighbor, maxDataPoints),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = model.NewLogger("neighbors.knn", "KNNClassifier")
	}
	return c, nil
}

// AddTrainingData copies features into the store under label, evicting the
// oldest sample when full. A vector of the wrong length is rejected with a
// DimensionError and leaves the store unchanged.
func (c *KNNClassifier) AddTrainingData(features []int, label int) error {
	evicted, err := c.store.Push(features, label)
	if err != nil {
		return err
	}
	if evicted && c.logger.Enabled(context.Background(), log.LevelDebug) {
		c.logger.Debug("sample evicted",
			log.OperationKey, log.OperationTrain,
			log.CapacityKey, c.store.Cap(),
			log.EvictionsKey, c.store.Evictions(),
		)
	}
	c.SetFitted()
	return nil
}

// Train is AddTrainingData under the model.Learner name.
func (c *KNNClassifier) Train(features []int, label int) error {
	return c.AddTrainingData(features, label)
}

// Predict returns the majority label among the k nearest stored samples, or
// Unknown when the store is empty.
//
// Distance ties keep store order (oldest first). Vote ties go to the smallest
// label. Negative labels are stored but never vote; if none of the nearest
// samples can vote, Unknown is returned.
func (c *KNNClassifier) Predict(features []int) (int, error) {
	if len(features) != c.numFeatures {
		return Unknown, errors.NewDimensionError("KNNClassifier.Predict", c.numFeatures, len(features), 1)
	}
	n := c.store.Len()
	if n == 0 {
		return Unknown, nil
	}

	nb := c.scratch[:n]
	for i, s := range c.store.All() {
		nb[i] = neighbor{distance: squaredDistance(features, s.Features), label: s.Label}
	}
	slices.SortStableFunc(nb, func(a, b neighbor) int {
		return cmp.Compare(a.distance, b.distance)
	})
	return vote(nb[:min(c.k, n)]), nil
}

// Clean drops every stored sample. The store keeps its memory.
func (c *KNNClassifier) Clean() {
	c.store.Clear()
	c.Reset()
	c.logger.Debug("model cleaned", log.OperationKey, log.OperationClean)
}

// Len returns the number of stored samples.
func (c *KNNClassifier) Len() int { return c.store.Len() }

// Capacity returns maxDataPoints.
func (c *KNNClassifier) Capacity() int { return c.store.Cap() }

// K returns the configured neighbor count.
func (c *KNNClassifier) K() int { return c.k }

func squaredDistance(a, b []int) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return sum
}

// vote counts each label at its first occurrence only, so no tally array
// sized by the label range is needed.
func vote(nb []neighbor) int {
	best, bestVotes := Unknown, 0
	for i, cand := range nb {
		if cand.label < 0 || slices.ContainsFunc(nb[:i], func(p neighbor) bool { return p.label == cand.label }) {
			continue
		}
		votes := 0
		for _, o := range nb[i:] {
			if o.label == cand.label {
				votes++
			}
		}
		if votes > bestVotes || (votes == bestVotes && cand.label < best) {
			best, bestVotes = cand.label, votes
		}
	}
	return best
}
