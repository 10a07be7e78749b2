package linear_model

import (
	"github.com/YuminosukeSato/edgeml/core/model"
)

// Perceptron はステップ関数を活性化関数とする二値分類器。
// 出力は bias + w·x >= 0 なら 1、それ以外は 0。
type Perceptron struct {
	*linearModel
}

var _ model.Classifier = (*Perceptron)(nil)

// NewPerceptron は重みをゼロで初期化した Perceptron を作成する
func NewPerceptron(numFeatures int, opts ...Option) (*Perceptron, error) {
	m, _, err := newLinearModel("Perceptron", "linear_model.perceptron", numFeatures, opts)
	if err != nil {
		return nil, err
	}
	return &Perceptron{linearModel: m}, nil
}

// Train は期待出力 expected (0 または 1) に対して1ステップ更新する。
// 誤差は expected - Predict(features) の整数値。
func (p *Perceptron) Train(features []int, expected int) error {
	if err := p.load("Perceptron.Train", features); err != nil {
		return err
	}
	residual := expected - step(p.net())
	return p.update("Perceptron.Train", float64(residual))
}

// Predict は 0 または 1 を返す
func (p *Perceptron) Predict(features []int) (int, error) {
	if err := p.load("Perceptron.Predict", features); err != nil {
		return 0, err
	}
	return step(p.net()), nil
}

// ExportWeights は学習済みの重みを返す。未学習なら NotFittedError。
func (p *Perceptron) ExportWeights() (*model.ModelWeights, error) {
	return p.exportWeights(map[string]float64{})
}

// ImportWeights は ExportWeights で得た重みを読み込む
func (p *Perceptron) ImportWeights(mw *model.ModelWeights) error {
	return p.importWeights(mw)
}

func step(x float64) int {
	if x >= 0 {
		return 1
	}
	return 0
}
