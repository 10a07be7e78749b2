package drift

import (
	"github.com/YuminosukeSato/edgeml/core/model"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
)

// Monitor は分類器を test-then-train で学習させ、ドリフトを検出したら Clean する
type Monitor struct {
	clf    model.Classifier
	ddm    *DDM
	resets int
	logger log.Logger
}

// NewMonitor は clf を ddm で監視する Monitor を作成する。ddm が nil ならデフォルト設定を使う。
func NewMonitor(clf model.Classifier, ddm *DDM) *Monitor {
	if ddm == nil {
		ddm = NewDDM()
	}
	return &Monitor{
		clf:    clf,
		ddm:    ddm,
		logger: log.GetLoggerWithName("drift.monitor"),
	}
}

// Observe はまず features を予測して正誤を DDM に渡し、その後 (features, label) を学習する。
// ドリフトが検出された場合は学習前に分類器を Clean し、ModelDriftWarning を発行する。
// 返り値の予測は学習前のモデルによるもの。
func (m *Monitor) Observe(features []int, label int) (predicted int, result Result, err error) {
	predicted, err = m.clf.Predict(features)
	if err != nil {
		return predicted, Result{}, errors.Wrap(err, "Monitor.Observe")
	}

	// 未学習の分類器の予測は評価しない
	if predicted != model.Unknown {
		result = m.ddm.Update(predicted == label)
		if result.DriftDetected {
			m.clf.Clean()
			m.resets++
			errors.Warn(errors.NewModelDriftWarning("DDM", result.ErrorRate, m.ddm.outControlLevel, "classifier cleaned"))
			m.logger.Info("drift detected, classifier cleaned",
				log.OperationKey, log.OperationClean,
				"resets", m.resets,
			)
		}
	}

	if err := m.clf.Train(features, label); err != nil {
		return predicted, result, errors.Wrap(err, "Monitor.Observe")
	}
	return predicted, result, nil
}

// Resets はドリフトによって分類器を Clean した回数を返す
func (m *Monitor) Resets() int { return m.resets }

// Detector は内部の DDM を返す
func (m *Monitor) Detector() *DDM { return m.ddm }
