// Package preprocessing は連続値のセンサ読み取り値をモデルの入力形式に変換する
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edgeml/core/model"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// UniformDiscretizer は各特徴量の [min, max] を nBins 個の等幅区間に分け、
// 値を区間番号 0..nBins-1 に変換する。CategoricalNB の入力を作るために使う。
type UniformDiscretizer struct {
	model.BaseEstimator

	// NBins は区間の数
	NBins int

	// Min, Max は各特徴量の観測範囲
	Min []float64
	Max []float64
}

// NewUniformDiscretizer は新しいUniformDiscretizerを作成する
//
// 使用例:
//
//	disc, _ := preprocessing.NewUniformDiscretizer(8)
//	_ = disc.Fit(X)
//	nb, _ := naive_bayes.NewCategoricalNB(disc.NFeatures(), 2, disc.MaxValues())
//	bins, _ := disc.Transform(row)
func NewUniformDiscretizer(nBins int) (*UniformDiscretizer, error) {
	if nBins <= 0 {
		return nil, errors.NewValidationError("nBins", "must be positive", nBins)
	}
	return &UniformDiscretizer{NBins: nBins}, nil
}

// Fit は訓練データの列ごとの最小値・最大値を記録する
func (d *UniformDiscretizer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("UniformDiscretizer.Fit", "empty data", errors.ErrEmptyData)
	}

	d.Min = make([]float64, c)
	d.Max = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		if err := errors.CheckNumericalStability("UniformDiscretizer.Fit", col, j); err != nil {
			return err
		}
		d.Min[j] = floats.Min(col)
		d.Max[j] = floats.Max(col)
	}
	d.SetFitted()
	return nil
}

// PartialFit は1行分の観測で範囲を広げる。最初の呼び出しで特徴量数が決まる。
func (d *UniformDiscretizer) PartialFit(row []float64) error {
	if len(row) == 0 {
		return errors.NewModelError("UniformDiscretizer.PartialFit", "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckNumericalStability("UniformDiscretizer.PartialFit", row, 0); err != nil {
		return err
	}
	if !d.IsFitted() {
		d.Min = append([]float64(nil), row...)
		d.Max = append([]float64(nil), row...)
		d.SetFitted()
		return nil
	}
	if len(row) != len(d.Min) {
		return errors.NewDimensionError("UniformDiscretizer.PartialFit", len(d.Min), len(row), 1)
	}
	for j, v := range row {
		d.Min[j] = math.Min(d.Min[j], v)
		d.Max[j] = math.Max(d.Max[j], v)
	}
	return nil
}

// Transform は1行を区間番号に変換する。範囲外の値は端の区間に丸める。
func (d *UniformDiscretizer) Transform(row []float64) ([]int, error) {
	out := make([]int, len(row))
	if err := d.TransformInto(row, out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransformInto は Transform の割り当てを行わない版。dst は row と同じ長さが必要。
func (d *UniformDiscretizer) TransformInto(row []float64, dst []int) error {
	if !d.IsFitted() {
		return errors.NewNotFittedError("UniformDiscretizer", "Transform")
	}
	if len(row) != len(d.Min) {
		return errors.NewDimensionError("UniformDiscretizer.Transform", len(d.Min), len(row), 1)
	}
	if len(dst) != len(row) {
		return errors.NewDimensionError("UniformDiscretizer.Transform", len(row), len(dst), 1)
	}
	for j, v := range row {
		width := d.Max[j] - d.Min[j]
		if width == 0 || math.IsNaN(v) {
			dst[j] = 0
			continue
		}
		bin := int(math.Floor((v - d.Min[j]) / width * float64(d.NBins)))
		dst[j] = min(max(bin, 0), d.NBins-1)
	}
	return nil
}

// NFeatures は特徴量数を返す。未学習なら 0。
func (d *UniformDiscretizer) NFeatures() int { return len(d.Min) }

// MaxValues は各特徴量の値域上限（すべて NBins）を返す。
// naive_bayes.NewCategoricalNB の featureMaxValues にそのまま渡せる。
func (d *UniformDiscretizer) MaxValues() []int {
	out := make([]int, len(d.Min))
	for j := range out {
		out[j] = d.NBins
	}
	return out
}
