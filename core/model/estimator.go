package model

// Learner は1サンプルずつ学習するモデルのインターフェース
type Learner interface {
	// Train は特徴量ベクトルとラベル（または期待出力）を1件学習する
	Train(features []int, label int) error
}

// Predictor はクラスラベルを予測するモデルのインターフェース
type Predictor interface {
	// Predict は特徴量ベクトルに対するラベルを返す
	Predict(features []int) (int, error)
}

// Cleaner は構築直後の状態に戻せるモデルのインターフェース
type Cleaner interface {
	// Clean は学習内容を破棄する。確保済みのメモリは解放しない
	Clean()
}

// Classifier はオンライン分類器の共通インターフェース。
// KNNClassifier, CategoricalNB, Perceptron, LogisticRegression が実装する。
type Classifier interface {
	Learner
	Predictor
	Cleaner
}

// Unknown は学習データが無い分類器が返すラベル
const Unknown = -1
