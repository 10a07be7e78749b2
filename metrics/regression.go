// Package metrics は分類器と回帰モデルの評価指標を提供する
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// residuals は yTrue - yPred を返す
func residuals(op string, yTrue, yPred *mat.VecDense) (*mat.VecDense, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	diff := mat.NewVecDense(n, nil)
	diff.SubVec(yTrue, yPred)
	return diff, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	return mat.Dot(diff, diff) / float64(diff.Len()), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MAE = (1/n) * Σ|yTrue - yPred|
	return floats.Norm(diff.RawVector().Data, 1) / float64(diff.Len()), nil
}

// R2Score は決定係数（R²）を計算する。
// yTrue の分散が0の場合は UndefinedMetricWarning を発行して 0 を返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	n := yTrue.Len()

	centered := mat.NewVecDense(n, nil)
	mean := mat.Sum(yTrue) / float64(n)
	for i := 0; i < n; i++ {
		centered.SetVec(i, yTrue.AtVec(i)-mean)
	}
	tss := mat.Dot(centered, centered)
	rss := mat.Dot(diff, diff)

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "total sum of squares is zero", 0))
		return 0, nil
	}
	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}
