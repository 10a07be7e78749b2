// Package log defines standard attribute keys for edgeml log records.
//
// Keys follow a dotted naming convention ("model.name", "store.capacity") so
// records from different models can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the model type, e.g. "KNNClassifier".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies a model instance (a UUID assigned at construction).
	EstimatorIDKey = "estimator.id"

	// OperationKey names the operation being performed, see the Operation* values.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey is the number of samples currently held or seen.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features per sample.
	FeaturesKey = "data.features"

	// ClassesKey is the number of classes of a classifier.
	ClassesKey = "data.classes"

	// LabelKey is the label involved in the event.
	LabelKey = "data.label"

	// FeatureIndexKey is the index of the feature involved in the event.
	FeatureIndexKey = "data.feature_index"
)

// Bounded store
const (
	// CapacityKey is the fixed capacity of a sample store.
	CapacityKey = "store.capacity"

	// EvictionsKey is the number of evictions performed so far.
	EvictionsKey = "store.evictions"
)

// Training and Fit
const (
	// LearningRateKey records the learning rate of gradient-based models.
	LearningRateKey = "hyperparams.learning_rate"

	// StepKey records the number of training steps applied.
	StepKey = "training.step"

	// SlopeKey and InterceptKey record regression coefficients.
	SlopeKey     = "fit.slope"
	InterceptKey = "fit.intercept"

	// ValidKey records whether a fit is meaningful.
	ValidKey = "fit.valid"

	// ThresholdKey records the decision threshold used for classification.
	ThresholdKey = "preds.threshold"
)

// Error Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationTrain     = "train"
	OperationPredict   = "predict"
	OperationClean     = "clean"
	OperationCalculate = "calculate"
	OperationSave      = "save"
	OperationLoad      = "load"
	OperationAcquire   = "acquire"
)
