package linear_model

import (
	"math"

	"github.com/YuminosukeSato/edgeml/core/model"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// LogisticRegression はシグモイド関数を活性化関数とするオンライン二値分類器
type LogisticRegression struct {
	*linearModel
	threshold float64
}

var _ model.Classifier = (*LogisticRegression)(nil)

// NewLogisticRegression は重みをゼロで初期化した LogisticRegression を作成する
func NewLogisticRegression(numFeatures int, opts ...Option) (*LogisticRegression, error) {
	m, o, err := newLinearModel("LogisticRegression", "linear_model.logistic", numFeatures, opts)
	if err != nil {
		return nil, err
	}
	if !(o.threshold > 0 && o.threshold < 1) {
		return nil, errors.NewValidationError("threshold", "must be in (0, 1)", o.threshold)
	}
	return &LogisticRegression{linearModel: m, threshold: o.threshold}, nil
}

// Train は期待出力 expected (0 または 1) に対して1ステップ更新する。
// 誤差は expected - sigmoid(bias + w·x) の連続値。
func (lr *LogisticRegression) Train(features []int, expected int) error {
	if err := lr.load("LogisticRegression.Train", features); err != nil {
		return err
	}
	residual := float64(expected) - sigmoid(lr.net())
	return lr.update("LogisticRegression.Train", residual)
}

// PredictProbability はクラス 1 である確率 sigmoid(bias + w·x) を返す
func (lr *LogisticRegression) PredictProbability(features []int) (float64, error) {
	if err := lr.load("LogisticRegression.PredictProbability", features); err != nil {
		return 0, err
	}
	return sigmoid(lr.net()), nil
}

// PredictClass は設定された閾値（デフォルト 0.5）で二値化したクラスを返す
func (lr *LogisticRegression) PredictClass(features []int) (int, error) {
	return lr.PredictClassThreshold(features, lr.threshold)
}

// PredictClassThreshold は確率が threshold 以上なら 1 を返す
func (lr *LogisticRegression) PredictClassThreshold(features []int, threshold float64) (int, error) {
	p, err := lr.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	if p >= threshold {
		return 1, nil
	}
	return 0, nil
}

// Predict は PredictClass と同じ。model.Classifier を満たすために提供する。
func (lr *LogisticRegression) Predict(features []int) (int, error) {
	return lr.PredictClass(features)
}

// Threshold は分類閾値を返す
func (lr *LogisticRegression) Threshold() float64 { return lr.threshold }

// ExportWeights は学習済みの重みを返す。未学習なら NotFittedError。
func (lr *LogisticRegression) ExportWeights() (*model.ModelWeights, error) {
	return lr.exportWeights(map[string]float64{"threshold": lr.threshold})
}

// ImportWeights は ExportWeights で得た重みを読み込む
func (lr *LogisticRegression) ImportWeights(mw *model.ModelWeights) error {
	return lr.importWeights(mw)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
