package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// Accuracy は予測ラベルの正解率を返す。
// 分類器が学習データ無しで返す -1 も1つのラベルとして比較する。
func Accuracy(yTrue, yPred []int) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueError("Accuracy", "empty labels")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("Accuracy", len(yTrue), len(yPred), 0)
	}
	correct := 0
	for i, y := range yTrue {
		if yPred[i] == y {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix は numClasses×numClasses の混同行列を返す。
// 行が正解ラベル、列が予測ラベル。範囲外のラベル（-1 を含む）を含むサンプルは数えない。
func ConfusionMatrix(yTrue, yPred []int, numClasses int) (*mat.Dense, error) {
	if numClasses <= 0 {
		return nil, errors.NewValidationError("numClasses", "must be positive", numClasses)
	}
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(yTrue), len(yPred), 0)
	}
	cm := mat.NewDense(numClasses, numClasses, nil)
	for i, y := range yTrue {
		p := yPred[i]
		if y < 0 || y >= numClasses || p < 0 || p >= numClasses {
			continue
		}
		cm.Set(y, p, cm.At(y, p)+1)
	}
	return cm, nil
}
