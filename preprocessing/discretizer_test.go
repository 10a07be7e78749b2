package preprocessing

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
	"github.com/YuminosukeSato/edgeml/sklearn/naive_bayes"
)

// TestUniformDiscretizerFitTransform は区間への変換をテスト
func TestUniformDiscretizerFitTransform(t *testing.T) {
	d, err := NewUniformDiscretizer(4)
	if err != nil {
		t.Fatal(err)
	}
	X := mat.NewDense(3, 2, []float64{
		0, 100,
		4, 100,
		8, 100,
	})
	if err := d.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	tests := []struct {
		name string
		row  []float64
		want []int
	}{
		{"lower edge", []float64{0, 100}, []int{0, 0}},
		{"inner bins", []float64{2.5, 100}, []int{1, 0}},
		{"upper edge", []float64{8, 100}, []int{3, 0}},
		{"below range", []float64{-3, 50}, []int{0, 0}},
		{"above range", []float64{42, 150}, []int{3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Transform(tt.row)
			if err != nil {
				t.Fatal(err)
			}
			for j := range tt.want {
				if got[j] != tt.want[j] {
					t.Errorf("Transform(%v) = %v, want %v", tt.row, got, tt.want)
					break
				}
			}
		})
	}

	if mv := d.MaxValues(); len(mv) != 2 || mv[0] != 4 || mv[1] != 4 {
		t.Errorf("MaxValues = %v", mv)
	}
}

// TestUniformDiscretizerPartialFit は逐次的な範囲更新をテスト
func TestUniformDiscretizerPartialFit(t *testing.T) {
	d, _ := NewUniformDiscretizer(2)
	for _, row := range [][]float64{{5}, {1}, {9}} {
		if err := d.PartialFit(row); err != nil {
			t.Fatal(err)
		}
	}
	if d.Min[0] != 1 || d.Max[0] != 9 {
		t.Errorf("range = [%v, %v], want [1, 9]", d.Min[0], d.Max[0])
	}
	if err := d.PartialFit([]float64{1, 2}); err == nil {
		t.Error("expected dimension error")
	}
}

// TestUniformDiscretizerErrors はエラーケースをテスト
func TestUniformDiscretizerErrors(t *testing.T) {
	if _, err := NewUniformDiscretizer(0); err == nil {
		t.Error("expected validation error")
	}

	d, _ := NewUniformDiscretizer(3)
	var nf *errors.NotFittedError
	if _, err := d.Transform([]float64{1}); !errors.As(err, &nf) {
		t.Errorf("Transform before Fit: %v, want NotFittedError", err)
	}
	if err := d.PartialFit([]float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	var dimErr *errors.DimensionError
	if _, err := d.Transform([]float64{1}); !errors.As(err, &dimErr) {
		t.Errorf("Transform wrong length: %v, want DimensionError", err)
	}
	if err := d.TransformInto([]float64{1, 2}, make([]int, 1)); !errors.As(err, &dimErr) {
		t.Errorf("TransformInto short dst: %v, want DimensionError", err)
	}
}

// TestUniformDiscretizerFeedsNaiveBayes は離散化した連続値で CategoricalNB が学習できることをテスト
func TestUniformDiscretizerFeedsNaiveBayes(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{0.1, 0.4, 0.2, 9.5, 9.9, 9.1})
	labels := []int{0, 0, 0, 1, 1, 1}

	d, _ := NewUniformDiscretizer(5)
	if err := d.Fit(X); err != nil {
		t.Fatal(err)
	}
	nb, err := naive_bayes.NewCategoricalNB(d.NFeatures(), 2, d.MaxValues(),
		naive_bayes.WithLogger(log.NewTestLogger(log.LevelError)))
	if err != nil {
		t.Fatal(err)
	}

	bins := make([]int, 1)
	for i, label := range labels {
		if err := d.TransformInto(X.RawRowView(i), bins); err != nil {
			t.Fatal(err)
		}
		if err := nb.Train(bins, label); err != nil {
			t.Fatal(err)
		}
	}

	for _, tt := range []struct {
		v    float64
		want int
	}{{0.3, 0}, {9.7, 1}} {
		b, _ := d.Transform([]float64{tt.v})
		got, err := nb.Predict(b)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Predict(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
