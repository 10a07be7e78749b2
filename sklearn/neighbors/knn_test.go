package neighbors

import (
	"testing"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
)

const (
	labelA = 0
	labelB = 1
	labelC = 2
)

func newKNN(t *testing.T, numFeatures, k, capacity int) *KNNClassifier {
	t.Helper()
	c, err := NewKNNClassifier(numFeatures, k, capacity, WithLogger(log.NewTestLogger(log.LevelDebug)))
	if err != nil {
		t.Fatalf("NewKNNClassifier: %v", err)
	}
	return c
}

func mustPredict(t *testing.T, c *KNNClassifier, features ...int) int {
	t.Helper()
	got, err := c.Predict(features)
	if err != nil {
		t.Fatalf("Predict(%v): %v", features, err)
	}
	return got
}

// TestKNNNearestNeighbor tests single-neighbor classification on a 1-D line.
func TestKNNNearestNeighbor(t *testing.T) {
	c := newKNN(t, 1, 1, 3)
	for _, s := range []struct{ x, label int }{{0, labelA}, {10, labelA}, {100, labelB}} {
		if err := c.AddTrainingData([]int{s.x}, s.label); err != nil {
			t.Fatal(err)
		}
	}

	if got := mustPredict(t, c, 2); got != labelA {
		t.Errorf("Predict(2) = %d, want A", got)
	}
	if got := mustPredict(t, c, 99); got != labelB {
		t.Errorf("Predict(99) = %d, want B", got)
	}
}

// TestKNNEviction tests that evicted samples no longer influence predictions.
func TestKNNEviction(t *testing.T) {
	logger := log.NewTestLogger(log.LevelDebug)
	c, err := NewKNNClassifier(1, 1, 2, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	_ = c.AddTrainingData([]int{0}, labelA)
	_ = c.AddTrainingData([]int{50}, labelB)
	_ = c.AddTrainingData([]int{100}, labelC)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if got := mustPredict(t, c, 1); got != labelB {
		t.Errorf("Predict(1) = %d, want B (A was evicted)", got)
	}
	if !logger.ContainsMessage("sample evicted") {
		t.Error("expected an eviction debug log")
	}
}

// TestKNNVoting tests majority voting and its tie rules.
func TestKNNVoting(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		samples [][2]int // x, label
		query   int
		want    int
	}{
		{
			name:    "majority wins over nearest",
			k:       3,
			samples: [][2]int{{0, 5}, {2, 7}, {3, 7}, {50, 5}},
			query:   0,
			want:    7,
		},
		{
			name:    "vote tie goes to smallest label",
			k:       2,
			samples: [][2]int{{1, 9}, {2, 4}},
			query:   0,
			want:    4,
		},
		{
			name:    "distance tie keeps store order",
			k:       1,
			samples: [][2]int{{-1, 8}, {1, 3}},
			query:   0,
			want:    8,
		},
		{
			name:    "k larger than store",
			k:       10,
			samples: [][2]int{{0, 2}, {1, 1}, {2, 1}},
			query:   0,
			want:    1,
		},
		{
			name:    "negative labels do not vote",
			k:       3,
			samples: [][2]int{{0, -3}, {1, -3}, {2, 6}},
			query:   0,
			want:    6,
		},
		{
			name:    "only negative labels",
			k:       1,
			samples: [][2]int{{0, -1}},
			query:   0,
			want:    Unknown,
		},
		{
			name:    "large label values",
			k:       3,
			samples: [][2]int{{0, 1_000_000}, {1, 1_000_000}, {2, 3}},
			query:   0,
			want:    1_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newKNN(t, 1, tt.k, len(tt.samples))
			for _, s := range tt.samples {
				if err := c.AddTrainingData([]int{s[0]}, s[1]); err != nil {
					t.Fatal(err)
				}
			}
			if got := mustPredict(t, c, tt.query); got != tt.want {
				t.Errorf("Predict(%d) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

// TestKNNMultiFeatureDistance tests squared Euclidean distance across features.
func TestKNNMultiFeatureDistance(t *testing.T) {
	c := newKNN(t, 3, 1, 4)
	_ = c.AddTrainingData([]int{0, 0, 0}, labelA)
	_ = c.AddTrainingData([]int{10, 10, 10}, labelB)
	_ = c.AddTrainingData([]int{0, 0, 20}, labelC)

	if got := mustPredict(t, c, 8, 9, 7); got != labelB {
		t.Errorf("Predict = %d, want B", got)
	}
	if got := mustPredict(t, c, 1, -1, 14); got != labelC {
		t.Errorf("Predict = %d, want C", got)
	}
}

// TestKNNEmptyAndClean tests the empty sentinel before training and after Clean.
func TestKNNEmptyAndClean(t *testing.T) {
	c := newKNN(t, 2, 3, 5)
	fresh := mustPredict(t, c, 1, 1)
	if fresh != Unknown {
		t.Fatalf("empty Predict = %d, want Unknown", fresh)
	}

	_ = c.AddTrainingData([]int{1, 1}, labelB)
	if !c.IsFitted() {
		t.Error("expected fitted after training")
	}
	c.Clean()

	if c.Len() != 0 || c.IsFitted() {
		t.Errorf("after Clean: Len = %d, fitted = %v", c.Len(), c.IsFitted())
	}
	if got := mustPredict(t, c, 1, 1); got != fresh {
		t.Errorf("Predict after Clean = %d, want %d", got, fresh)
	}
	if c.Capacity() != 5 {
		t.Errorf("Capacity changed to %d", c.Capacity())
	}
}

// TestKNNDimensionErrors tests rejection of mismatched feature vectors.
func TestKNNDimensionErrors(t *testing.T) {
	c := newKNN(t, 2, 1, 2)
	var dimErr *errors.DimensionError

	if err := c.AddTrainingData([]int{1}, labelA); !errors.As(err, &dimErr) {
		t.Errorf("AddTrainingData error = %v, want DimensionError", err)
	}
	if c.Len() != 0 {
		t.Errorf("rejected sample was stored")
	}
	if _, err := c.Predict([]int{1, 2, 3}); !errors.As(err, &dimErr) {
		t.Errorf("Predict error = %v, want DimensionError", err)
	}
}

// TestNewKNNClassifierValidation tests construction parameter checks.
func TestNewKNNClassifierValidation(t *testing.T) {
	tests := []struct {
		name                         string
		numFeatures, k, maxDataPoint int
	}{
		{"zero features", 0, 1, 1},
		{"zero k", 1, 0, 1},
		{"zero capacity", 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKNNClassifier(tt.numFeatures, tt.k, tt.maxDataPoint)
			var valErr *errors.ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}
