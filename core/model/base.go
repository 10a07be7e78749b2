package model

import (
	"github.com/google/uuid"

	"github.com/YuminosukeSato/edgeml/pkg/log"
)

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted は少なくとも1サンプルを学習済みの状態
	Fitted
)

// BaseEstimator は全てのモデルに埋め込まれる学習状態
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}

// NewLogger はコンポーネント名付きのロガーを返す。
// モデル名と、インスタンスごとに新しく採番した estimator.id が付与される。
func NewLogger(component, modelName string) log.Logger {
	return log.GetLoggerWithName(component).With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, uuid.NewString(),
	)
}
