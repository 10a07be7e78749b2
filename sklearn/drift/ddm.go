// Package drift はオンライン分類器の概念ドリフト検出を提供する。
//
// 予測の正誤を DDM に流し、誤り率が統計的に有意に悪化したら分類器を Clean して
// 新しい分布で学習し直す、という使い方を想定している。
package drift

import (
	"math"
)

// DDM (Drift Detection Method) is a concept drift detection method
// Proposed in J. Gama, P. Medas, G. Castillo, P. Rodrigues (2004)
// "Learning with Drift Detection"
type DDM struct {
	// Hyperparameters
	minNumInstances int     // Minimum number of instances
	warningLevel    float64 // Warning level
	outControlLevel float64 // Out of control level

	// Statistics
	numInstances int
	numErrors    int
	errorRate    float64
	stdDev       float64

	// Reference values (minimum of errorRate+stdDev since the last reset)
	minErrorRate float64
	minStdDev    float64

	warningDetected bool
	driftDetected   bool
}

// Result represents the result of one DDM update
type Result struct {
	WarningDetected bool    // Whether warning was detected
	DriftDetected   bool    // Whether drift was detected
	ErrorRate       float64 // Current error rate
	ConfidenceLevel float64 // (p+s)/(pmin+smin)
}

// DDMOption is a DDM configuration option
type DDMOption func(*DDM)

// WithDDMMinNumInstances sets the minimum number of samples before detection starts
func WithDDMMinNumInstances(n int) DDMOption {
	return func(ddm *DDM) {
		ddm.minNumInstances = n
	}
}

// WithDDMWarningLevel sets the warning level in standard deviations
func WithDDMWarningLevel(level float64) DDMOption {
	return func(ddm *DDM) {
		ddm.warningLevel = level
	}
}

// WithDDMOutControlLevel sets the drift level in standard deviations
func WithDDMOutControlLevel(level float64) DDMOption {
	return func(ddm *DDM) {
		ddm.outControlLevel = level
	}
}

// NewDDM creates a new DDM instance
func NewDDM(options ...DDMOption) *DDM {
	ddm := &DDM{
		minNumInstances: 30,
		warningLevel:    2.0, // μ + 2σ
		outControlLevel: 3.0, // μ + 3σ
	}
	for _, opt := range options {
		opt(ddm)
	}
	ddm.Reset()
	return ddm
}

// Update updates the detector with whether the latest prediction was correct.
// The detector resets itself after reporting a drift.
func (ddm *DDM) Update(correct bool) Result {
	ddm.numInstances++
	if !correct {
		ddm.numErrors++
	}
	if ddm.numInstances < ddm.minNumInstances {
		return Result{}
	}

	n := float64(ddm.numInstances)
	ddm.errorRate = float64(ddm.numErrors) / n
	ddm.stdDev = math.Sqrt(ddm.errorRate * (1.0 - ddm.errorRate) / n)
	result := Result{ErrorRate: ddm.errorRate}

	// 基準値の更新（最小エラー率とその時の標準偏差）
	level := ddm.errorRate + ddm.stdDev
	if level < ddm.minErrorRate+ddm.minStdDev {
		ddm.minErrorRate = ddm.errorRate
		ddm.minStdDev = ddm.stdDev
	}

	if reference := ddm.minErrorRate + ddm.minStdDev; reference > 0 {
		result.ConfidenceLevel = level / reference
	} else {
		result.ConfidenceLevel = 1.0
	}

	ddm.warningDetected = level > ddm.minErrorRate+ddm.warningLevel*ddm.minStdDev
	ddm.driftDetected = level > ddm.minErrorRate+ddm.outControlLevel*ddm.minStdDev
	result.WarningDetected = ddm.warningDetected
	result.DriftDetected = ddm.driftDetected

	if ddm.driftDetected {
		ddm.Reset()
	}
	return result
}

// Reset clears all statistics
func (ddm *DDM) Reset() {
	ddm.numInstances = 0
	ddm.numErrors = 0
	ddm.errorRate = 0
	ddm.stdDev = 0
	ddm.minErrorRate = math.Inf(1)
	ddm.minStdDev = math.Inf(1)
	ddm.warningDetected = false
	ddm.driftDetected = false
}

// Statistics returns the current statistics
func (ddm *DDM) Statistics() Statistics {
	return Statistics{
		NumInstances:    ddm.numInstances,
		NumErrors:       ddm.numErrors,
		ErrorRate:       ddm.errorRate,
		StdDev:          ddm.stdDev,
		MinErrorRate:    ddm.minErrorRate,
		MinStdDev:       ddm.minStdDev,
		WarningDetected: ddm.warningDetected,
	}
}

// Statistics はDDMの統計情報
type Statistics struct {
	NumInstances    int     // サンプル数
	NumErrors       int     // エラー数
	ErrorRate       float64 // エラー率
	StdDev          float64 // 標準偏差
	MinErrorRate    float64 // 最小エラー率
	MinStdDev       float64 // 最小標準偏差
	WarningDetected bool    // 警告検出フラグ
}
