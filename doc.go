// Package edgeml provides small online learners for microcontroller-class
// devices: memory bounded, single goroutine, and trained one sample at a time
// from sensor readings.
//
// Every model preallocates its storage at construction and never grows it.
// When a bounded store is full the oldest sample is evicted. Classifiers
// return -1 (model.Unknown) until they have seen data, and Clean returns a
// model to its freshly constructed state without releasing memory.
//
// # Quick Start
//
// A nearest-neighbour classifier over three integer features:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/edgeml/sklearn/neighbors"
//	)
//
//	func main() {
//	    knn, err := neighbors.NewKNNClassifier(3, 1, 32)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = knn.Train([]int{10, 20, 30}, 0)
//	    _ = knn.Train([]int{90, 80, 70}, 1)
//
//	    label, _ := knn.Predict([]int{12, 18, 33})
//	    fmt.Println(label) // 0
//	}
//
// A streaming regressor that learns when a sensor reading will reach a value:
//
//	reg, _ := linear.NewStreamingRegression(linear.DefaultCapacity)
//	for range 100 {
//	    _ = reg.AcquireTimed(adc, 0)
//	}
//	_ = reg.Calculate()
//	eta := reg.Predict(400)
//
// # Package Organization
//
//   - sklearn/neighbors: k-nearest-neighbour classifier over a bounded sample store
//   - sklearn/naive_bayes: categorical naive Bayes with count tables
//   - sklearn/linear_model: perceptron and logistic regression trained by SGD
//   - sklearn/drift: DDM drift detector and a test-then-train monitor
//   - linear: streaming least-squares regression with coefficient persistence
//   - preprocessing: uniform discretisation of continuous readings
//   - metrics: accuracy, confusion matrix and regression errors
//   - core/buffer: fixed-capacity ring buffer and sample store
//   - core/model: learner interfaces, gonum batch adapters and weight export
//   - sensor: analog source and millisecond tick abstractions
//   - pkg/storage: byte-addressable non-volatile memory stand-in
//   - pkg/config: YAML configuration for applications
//   - pkg/errors: typed errors and warnings built on cockroachdb/errors
//   - pkg/log: slog-compatible structured logging with zerolog and slog backends
//
// # Error Handling
//
// Operations return typed errors (DimensionError, ValidationError,
// NotFittedError, NumericalInstabilityError) that carry stack traces:
//
//	if err := knn.Train(features, label); err != nil {
//	    var dimErr *errors.DimensionError
//	    if errors.As(err, &dimErr) {
//	        // wrong feature count
//	    }
//	}
//
// Conditions that do not stop the model, such as a truncated non-integral
// feature or a detected drift, are reported through errors.Warn and end up in
// the "warnings" logger.
package edgeml
