// Package linear_model は単層のオンライン線形分類器を提供します。
//
// Perceptron（ステップ関数）と LogisticRegression（シグモイド関数）は同じ重みベクトルと
// バイアスを持ち、Train 1回につき確率的勾配法のステップを1回だけ実行します。
// 収束させるための反復は呼び出し側が行います。
package linear_model

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/edgeml/core/model"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
)

const (
	// DefaultLearningRate は学習率のデフォルト値
	DefaultLearningRate = 0.1
	// DefaultThreshold は LogisticRegression.PredictClass の閾値のデフォルト値
	DefaultThreshold = 0.5
)

type options struct {
	learningRate float64
	threshold    float64
	logger       log.Logger
}

// Option は線形分類器の設定関数
type Option func(*options)

// WithLearningRate は学習率を設定する
func WithLearningRate(lr float64) Option {
	return func(o *options) {
		o.learningRate = lr
	}
}

// WithThreshold は LogisticRegression の分類閾値を設定する。Perceptron では無視される。
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithLogger はロガーを設定する
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// linearModel は両分類器が共有する重み状態
type linearModel struct {
	model.BaseEstimator

	modelName    string
	learningRate float64
	weights      []float64
	bias         float64
	steps        int

	// x と next は Train/Predict 用の作業領域（構築時に確保）
	x    []float64
	next []float64

	logger log.Logger
}

func newLinearModel(modelName, component string, numFeatures int, opts []Option) (*linearModel, *options, error) {
	if numFeatures <= 0 {
		return nil, nil, errors.NewValidationError("numFeatures", "must be positive", numFeatures)
	}
	o := &options{learningRate: DefaultLearningRate, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(o)
	}
	if o.learningRate <= 0 || errors.CheckScalar("learningRate", o.learningRate, 0) != nil {
		return nil, nil, errors.NewValidationError("learningRate", "must be a positive finite number", o.learningRate)
	}
	if o.logger == nil {
		o.logger = model.NewLogger(component, modelName)
	}
	return &linearModel{
		modelName:    modelName,
		learningRate: o.learningRate,
		weights:      make([]float64, numFeatures),
		x:            make([]float64, numFeatures),
		next:         make([]float64, numFeatures),
		logger:       o.logger,
	}, o, nil
}

// load は特徴量を作業領域へ float64 として写す
func (m *linearModel) load(op string, features []int) error {
	if len(features) != len(m.weights) {
		return errors.NewDimensionError(op, len(m.weights), len(features), 1)
	}
	for i, v := range features {
		m.x[i] = float64(v)
	}
	return nil
}

// net は bias + Σ w_i x_i を返す。load の後に呼ぶこと。
func (m *linearModel) net() float64 {
	return m.bias + floats.Dot(m.weights, m.x)
}

// update は w += lr*err*x, b += lr*err を適用する。
// 更新後の値が有限でなければ NumericalInstabilityError を返し、重みは変更しない。
func (m *linearModel) update(op string, residual float64) error {
	scale := m.learningRate * residual
	floats.AddScaledTo(m.next, m.weights, scale, m.x)
	nextBias := m.bias + scale

	err := errors.CheckNumericalStability(op, m.next, m.steps)
	if err == nil {
		err = errors.CheckScalar(op, nextBias, m.steps)
	}
	if err != nil {
		m.logger.Debug("training step rejected",
			log.OperationKey, log.OperationTrain,
			log.StepKey, m.steps,
			log.LearningRateKey, m.learningRate,
		)
		return err
	}

	copy(m.weights, m.next)
	m.bias = nextBias
	m.steps++
	m.SetFitted()
	if m.logger.Enabled(context.Background(), log.LevelDebug) {
		m.logger.Debug("training step", log.StepKey, m.steps, log.OperationKey, log.OperationTrain)
	}
	return nil
}

// Clean は重みとバイアスをゼロに戻す
func (m *linearModel) Clean() {
	clear(m.weights)
	m.bias = 0
	m.steps = 0
	m.Reset()
	m.logger.Debug("model cleaned", log.OperationKey, log.OperationClean)
}

// Weights は重みのコピーを返す
func (m *linearModel) Weights() []float64 {
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

// Bias はバイアスを返す
func (m *linearModel) Bias() float64 { return m.bias }

// LearningRate は学習率を返す
func (m *linearModel) LearningRate() float64 { return m.learningRate }

// Steps は受理された学習ステップ数を返す
func (m *linearModel) Steps() int { return m.steps }

func (m *linearModel) exportWeights(hyper map[string]float64) (*model.ModelWeights, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError(m.modelName, "ExportWeights")
	}
	hyper["learning_rate"] = m.learningRate
	return &model.ModelWeights{
		ModelType:       m.modelName,
		Version:         model.WeightsVersion,
		Coefficients:    m.Weights(),
		Intercept:       m.bias,
		Hyperparameters: hyper,
		IsFitted:        true,
	}, nil
}

// importWeights は重みを置き換える。学習率などのハイパーパラメータは取り込まない。
func (m *linearModel) importWeights(mw *model.ModelWeights) error {
	if mw == nil {
		return errors.NewValueError("ImportWeights", "weights must not be nil")
	}
	if err := mw.Validate(); err != nil {
		return err
	}
	if mw.ModelType != m.modelName {
		return errors.NewValidationError("model_type", "does not match "+m.modelName, mw.ModelType)
	}
	if len(mw.Coefficients) != len(m.weights) {
		return errors.NewDimensionError("ImportWeights", len(m.weights), len(mw.Coefficients), 1)
	}
	copy(m.weights, mw.Coefficients)
	m.bias = mw.Intercept
	m.steps = 0
	m.SetFitted()
	m.logger.Debug("weights imported", log.OperationKey, log.OperationLoad)
	return nil
}
