package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      17.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSEAndMAE(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{10.0, 20.0, 30.0})
	yPred := mat.NewVecDense(3, []float64{12.0, 18.0, 33.0})

	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Sqrt(17.0 / 3.0); math.Abs(rmse-want) > 1e-10 {
		t.Errorf("RMSE() = %v, want %v", rmse, want)
	}

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if want := 7.0 / 3.0; math.Abs(mae-want) > 1e-10 {
		t.Errorf("MAE() = %v, want %v", mae, want)
	}

	if _, err := MAE(yTrue, mat.NewVecDense(1, nil)); err == nil {
		t.Error("MAE() expected dimension error")
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
		wantWarn  bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "no variance in yTrue",
			yTrue:     mat.NewVecDense(5, []float64{3.0, 3.0, 3.0, 3.0, 3.0}),
			yPred:     mat.NewVecDense(5, []float64{2.0, 3.0, 4.0, 3.0, 3.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantWarn:  true,
		},
		{
			name:      "worse than mean baseline",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{4.0, 3.0, 2.0, 1.0}),
			want:      -3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warnings []error
			errors.SetZerologWarnFunc(func(w error) { warnings = append(warnings, w) })
			defer errors.SetZerologWarnFunc(nil)

			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
			if (len(warnings) > 0) != tt.wantWarn {
				t.Errorf("warnings = %v, wantWarn %v", warnings, tt.wantWarn)
			}
			if tt.wantWarn {
				var w *errors.UndefinedMetricWarning
				if !errors.As(warnings[0], &w) {
					t.Errorf("warning type = %T", warnings[0])
				}
			}
		})
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []int
		yPred   []int
		want    float64
		wantErr bool
	}{
		{"all correct", []int{0, 1, 2}, []int{0, 1, 2}, 1.0, false},
		{"half correct", []int{0, 1, 1, 0}, []int{0, 0, 1, 1}, 0.5, false},
		{"unknown counts as wrong", []int{1, 1}, []int{-1, 1}, 0.5, false},
		{"empty", nil, nil, 0, true},
		{"length mismatch", []int{1}, []int{1, 1}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 2, 2, 1}
	yPred := []int{0, 1, 1, 1, 2, 0, -1}

	cm, err := ConfusionMatrix(yTrue, yPred, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := mat.NewDense(3, 3, []float64{
		1, 1, 0,
		0, 2, 0,
		1, 0, 1,
	})
	if !mat.Equal(cm, want) {
		t.Errorf("ConfusionMatrix() =\n%v\nwant\n%v", mat.Formatted(cm), mat.Formatted(want))
	}

	if _, err := ConfusionMatrix(yTrue, yPred[:2], 3); err == nil {
		t.Error("expected dimension error")
	}
	if _, err := ConfusionMatrix(yTrue, yPred, 0); err == nil {
		t.Error("expected validation error")
	}
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
