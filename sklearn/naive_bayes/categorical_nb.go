// Package naive_bayes は離散特徴量向けのナイーブベイズ分類器を提供します。
//
// サンプルそのものは保持せず、クラスごと・特徴量値ごとの出現回数（十分統計量）だけを
// 構築時に確保した配列で数え上げるため、学習サンプル数によらずメモリ使用量は一定です。
package naive_bayes

import (
	"context"
	"math"

	"github.com/YuminosukeSato/edgeml/core/model"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
)

// Unknown は未学習の分類器が Predict で返すラベル
const Unknown = model.Unknown

// ClassStatistics は CategoricalNB の十分統計量のスナップショット。
// 不変条件: sum(ClassCounts) == Total
type ClassStatistics struct {
	// ClassCounts[c] はクラス c の学習サンプル数
	ClassCounts []int64
	// FeatureCounts[f][v*numClasses+c] は特徴量 f が値 v をとったクラス c のサンプル数
	FeatureCounts [][]int64
	// Total は学習サンプルの総数
	Total int64
}

// CategoricalNB は値域 [0, featureMaxValues[f]) の整数特徴量を扱うナイーブベイズ分類器
type CategoricalNB struct {
	model.BaseEstimator

	numFeatures      int
	numClasses       int
	featureMaxValues []int

	classCounts   []int64
	featureCounts [][]int64
	total         int64

	logger log.Logger
}

var _ model.Classifier = (*CategoricalNB)(nil)

// Option は CategoricalNB の設定関数
type Option func(*CategoricalNB)

// WithLogger はロガーを設定する
func WithLogger(logger log.Logger) Option {
	return func(nb *CategoricalNB) {
		nb.logger = logger
	}
}

// NewCategoricalNB は新しい分類器を作成する。カウンタ配列はすべてここで確保される。
// featureMaxValues はコピーして保持するため、呼び出し後に変更しても影響しない。
func NewCategoricalNB(numFeatures, numClasses int, featureMaxValues []int, opts ...Option) (*CategoricalNB, error) {
	if numFeatures <= 0 {
		return nil, errors.NewValidationError("numFeatures", "must be positive", numFeatures)
	}
	if numClasses <= 0 {
		return nil, errors.NewValidationError("numClasses", "must be positive", numClasses)
	}
	if len(featureMaxValues) != numFeatures {
		return nil, errors.NewDimensionError("NewCategoricalNB", numFeatures, len(featureMaxValues), 1)
	}

	nb := &CategoricalNB{
		numFeatures:      numFeatures,
		numClasses:       numClasses,
		featureMaxValues: make([]int, numFeatures),
		classCounts:      make([]int64, numClasses),
		featureCounts:    make([][]int64, numFeatures),
	}
	for f, maxValue := range featureMaxValues {
		if maxValue <= 0 {
			return nil, errors.NewValidationError("featureMaxValues", "every entry must be positive", maxValue)
		}
		nb.featureMaxValues[f] = maxValue
		nb.featureCounts[f] = make([]int64, maxValue*numClasses)
	}
	for _, opt := range opts {
		opt(nb)
	}
	if nb.logger == nil {
		nb.logger = model.NewLogger("naive_bayes.categorical", "CategoricalNB")
	}
	return nb, nil
}

// Train は1サンプルを学習する。
// ラベルが [0, numClasses) の範囲外なら何もせず nil を返す。
// 値域外の特徴量値はその特徴量だけ読み飛ばし、残りの特徴量は通常通り数える。
func (nb *CategoricalNB) Train(features []int, label int) error {
	if len(features) != nb.numFeatures {
		return errors.NewDimensionError("CategoricalNB.Train", nb.numFeatures, len(features), 1)
	}
	if label < 0 || label >= nb.numClasses {
		nb.logger.Debug("label out of range, sample skipped",
			log.OperationKey, log.OperationTrain,
			log.LabelKey, label,
			log.ClassesKey, nb.numClasses,
		)
		return nil
	}

	nb.classCounts[label]++
	nb.total++
	debug := nb.logger.Enabled(context.Background(), log.LevelDebug)
	for f, v := range features {
		if v < 0 || v >= nb.featureMaxValues[f] {
			if debug {
				nb.logger.Debug("feature value out of range, feature skipped",
					log.OperationKey, log.OperationTrain,
					log.FeatureIndexKey, f,
				)
			}
			continue
		}
		nb.featureCounts[f][v*nb.numClasses+label]++
	}
	nb.SetFitted()
	return nil
}

// Predict は事後確率（対数）が最大のクラスを返す。未学習なら Unknown。
// 同点の場合は先に走査したクラス（インデックスの小さい方）を返す。
// 学習サンプルが0件のクラスは事前確率が log 0 になるため候補から外す。
func (nb *CategoricalNB) Predict(features []int) (int, error) {
	if len(features) != nb.numFeatures {
		return Unknown, errors.NewDimensionError("CategoricalNB.Predict", nb.numFeatures, len(features), 1)
	}
	if nb.total == 0 {
		return Unknown, nil
	}

	best, bestScore := Unknown, math.Inf(-1)
	for c := 0; c < nb.numClasses; c++ {
		score, ok := nb.logPosterior(features, c)
		if ok && score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}

// logPosterior は log P(c) + Σ log P(x_f|c) を返す。
// 尤度はラプラス平滑化 log((count+1)/(classCount+numClasses)) を用いる。
// クラス c の学習サンプルが無い場合は false を返す。
func (nb *CategoricalNB) logPosterior(features []int, c int) (float64, bool) {
	classCount := nb.classCounts[c]
	if classCount == 0 {
		return 0, false
	}
	score := math.Log(float64(classCount) / float64(nb.total))
	denom := float64(classCount + int64(nb.numClasses))
	for f, v := range features {
		var count int64
		if v >= 0 && v < nb.featureMaxValues[f] {
			count = nb.featureCounts[f][v*nb.numClasses+c]
		}
		score += math.Log(float64(count+1) / denom)
	}
	return score, true
}

// Clean は全カウンタをゼロに戻す。配列は再確保しない。
func (nb *CategoricalNB) Clean() {
	clear(nb.classCounts)
	for _, counts := range nb.featureCounts {
		clear(counts)
	}
	nb.total = 0
	nb.Reset()
	nb.logger.Debug("model cleaned", log.OperationKey, log.OperationClean)
}

// NSamplesSeen は学習済みサンプル数を返す
func (nb *CategoricalNB) NSamplesSeen() int64 { return nb.total }

// NumClasses はクラス数を返す
func (nb *CategoricalNB) NumClasses() int { return nb.numClasses }

// FeatureMaxValues は各特徴量の値域上限のコピーを返す
func (nb *CategoricalNB) FeatureMaxValues() []int {
	out := make([]int, len(nb.featureMaxValues))
	copy(out, nb.featureMaxValues)
	return out
}

// Statistics は十分統計量のディープコピーを返す。
// model.SaveModel で永続化し、Restore で復元できる。
func (nb *CategoricalNB) Statistics() ClassStatistics {
	stats := ClassStatistics{
		ClassCounts:   make([]int64, nb.numClasses),
		FeatureCounts: make([][]int64, nb.numFeatures),
		Total:         nb.total,
	}
	copy(stats.ClassCounts, nb.classCounts)
	for f, counts := range nb.featureCounts {
		stats.FeatureCounts[f] = make([]int64, len(counts))
		copy(stats.FeatureCounts[f], counts)
	}
	return stats
}

// Restore は Statistics で取得したスナップショットを既存の配列へ書き戻す。
// 形状か不変条件が合わない場合はエラーを返し、状態は変更しない。
func (nb *CategoricalNB) Restore(stats ClassStatistics) error {
	if len(stats.ClassCounts) != nb.numClasses {
		return errors.NewDimensionError("CategoricalNB.Restore", nb.numClasses, len(stats.ClassCounts), 1)
	}
	if len(stats.FeatureCounts) != nb.numFeatures {
		return errors.NewDimensionError("CategoricalNB.Restore", nb.numFeatures, len(stats.FeatureCounts), 0)
	}
	var sum int64
	for _, n := range stats.ClassCounts {
		if n < 0 {
			return errors.NewValidationError("ClassCounts", "counts must be non-negative", n)
		}
		sum += n
	}
	if sum != stats.Total {
		return errors.NewValidationError("Total", "must equal the sum of ClassCounts", stats.Total)
	}
	for f, counts := range stats.FeatureCounts {
		if len(counts) != len(nb.featureCounts[f]) {
			return errors.NewDimensionError("CategoricalNB.Restore", len(nb.featureCounts[f]), len(counts), 1)
		}
		for _, n := range counts {
			if n < 0 {
				return errors.NewValidationError("FeatureCounts", "counts must be non-negative", n)
			}
		}
	}

	copy(nb.classCounts, stats.ClassCounts)
	for f, counts := range stats.FeatureCounts {
		copy(nb.featureCounts[f], counts)
	}
	nb.total = stats.Total
	if nb.total > 0 {
		nb.SetFitted()
	} else {
		nb.Reset()
	}
	nb.logger.Debug("statistics restored", log.OperationKey, log.OperationLoad, log.SamplesKey, nb.total)
	return nil
}
