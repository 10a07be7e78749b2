package model

import (
	"encoding/json"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// WeightsVersion は ModelWeights のフォーマットバージョン
const WeightsVersion = "1"

// ModelWeights は線形分類器の重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（Perceptron, LogisticRegression）
	ModelType string `json:"model_type"`

	// Version はフォーマットのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients は重み係数
	Coefficients []float64 `json:"coefficients"`

	// Intercept はバイアス
	Intercept float64 `json:"intercept"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]float64 `json:"hyperparameters,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode model weights")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version != WeightsVersion {
		return errors.NewValidationError("version", "unsupported weights version", mw.Version)
	}
	if len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "must not be empty", len(mw.Coefficients))
	}
	if err := errors.CheckNumericalStability("ModelWeights.Validate", mw.Coefficients, 0); err != nil {
		return err
	}
	return errors.CheckScalar("ModelWeights.Validate", mw.Intercept, 0)
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:    mw.ModelType,
		Version:      mw.Version,
		Intercept:    mw.Intercept,
		IsFitted:     mw.IsFitted,
		Coefficients: make([]float64, len(mw.Coefficients)),
	}
	copy(clone.Coefficients, mw.Coefficients)
	if mw.Hyperparameters != nil {
		clone.Hyperparameters = make(map[string]float64, len(mw.Hyperparameters))
		for k, v := range mw.Hyperparameters {
			clone.Hyperparameters[k] = v
		}
	}
	return clone
}
