package model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// FitMatrix は行列の各行を1サンプルとして順に Train する。
// y は n×1 の行列。整数でない値は0方向に切り捨て、DataConversionWarning を1回だけ発行する。
func FitMatrix(l Learner, X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != rows {
		return errors.NewDimensionError("FitMatrix", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("FitMatrix", 1, yCols, 1)
	}

	conv := &converter{op: "FitMatrix"}
	features := make([]int, cols)
	for i := 0; i < rows; i++ {
		conv.row(X, i, features)
		if err := l.Train(features, conv.value(y.At(i, 0))); err != nil {
			return errors.Wrapf(err, "FitMatrix: row %d", i)
		}
	}
	conv.warn()
	return nil
}

// PredictMatrix は各行の予測ラベルをベクトルで返す
func PredictMatrix(p Predictor, X mat.Matrix) (*mat.VecDense, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.ErrEmptyData
	}

	conv := &converter{op: "PredictMatrix"}
	features := make([]int, cols)
	out := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		conv.row(X, i, features)
		label, err := p.Predict(features)
		if err != nil {
			return nil, errors.Wrapf(err, "PredictMatrix: row %d", i)
		}
		out.SetVec(i, float64(label))
	}
	conv.warn()
	return out, nil
}

type converter struct {
	op        string
	truncated int
}

func (c *converter) row(X mat.Matrix, i int, dst []int) {
	for j := range dst {
		dst[j] = c.value(X.At(i, j))
	}
}

func (c *converter) value(v float64) int {
	t := math.Trunc(v)
	if t != v {
		c.truncated++
	}
	return int(t)
}

func (c *converter) warn() {
	if c.truncated > 0 {
		errors.Warn(errors.NewDataConversionWarning("float64", "int", c.op+": non-integral values truncated"))
	}
}
