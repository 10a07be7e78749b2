// Package config loads edgeml application settings from YAML.
//
// Library types take functional options; this package maps a YAML file onto
// those options so that device firmware or a demo binary can be tuned
// without recompiling.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/edgeml/linear"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
	"github.com/YuminosukeSato/edgeml/sklearn/linear_model"
)

// Config is the root configuration structure.
type Config struct {
	KNN        KNNConfig        `yaml:"knn"`
	NaiveBayes NaiveBayesConfig `yaml:"naive_bayes"`
	Perceptron LinearConfig     `yaml:"perceptron"`
	Logistic   LinearConfig     `yaml:"logistic"`
	Regression RegressionConfig `yaml:"regression"`
	Log        LogConfig        `yaml:"log"`
}

// KNNConfig holds nearest-neighbour classifier settings.
type KNNConfig struct {
	NumFeatures   int `yaml:"num_features"`
	K             int `yaml:"k"`
	MaxDataPoints int `yaml:"max_data_points"`
}

// NaiveBayesConfig holds categorical naive Bayes settings.
type NaiveBayesConfig struct {
	NumClasses       int   `yaml:"num_classes"`
	FeatureMaxValues []int `yaml:"feature_max_values"`
	// Bins is used instead of FeatureMaxValues when features come from a
	// UniformDiscretizer.
	Bins int `yaml:"bins"`
}

// LinearConfig holds perceptron and logistic regression settings.
type LinearConfig struct {
	NumFeatures  int     `yaml:"num_features"`
	LearningRate float64 `yaml:"learning_rate"`
	// Threshold is only read by logistic regression.
	Threshold float64 `yaml:"threshold,omitempty"`
}

// RegressionConfig holds streaming regressor settings.
type RegressionConfig struct {
	Capacity        int  `yaml:"capacity"`
	IncrementalSums bool `yaml:"incremental_sums"`
}

// LogConfig selects the logging backend.
type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "zerolog" (JSON on stderr) or "slog" (JSON on stdout with stack traces).
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		KNN: KNNConfig{
			NumFeatures:   3,
			K:             3,
			MaxDataPoints: 32,
		},
		NaiveBayes: NaiveBayesConfig{
			NumClasses: 2,
			Bins:       8,
		},
		Perceptron: LinearConfig{
			NumFeatures:  3,
			LearningRate: linear_model.DefaultLearningRate,
		},
		Logistic: LinearConfig{
			NumFeatures:  3,
			LearningRate: linear_model.DefaultLearningRate,
			Threshold:    linear_model.DefaultThreshold,
		},
		Regression: RegressionConfig{
			Capacity: linear.DefaultCapacity,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "zerolog",
		},
	}
}

// Load loads configuration from a file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// Validate checks every section and returns the first ValidationError found.
func (c *Config) Validate() error {
	switch {
	case c.KNN.NumFeatures <= 0:
		return errors.NewValidationError("knn.num_features", "must be positive", c.KNN.NumFeatures)
	case c.KNN.K <= 0:
		return errors.NewValidationError("knn.k", "must be positive", c.KNN.K)
	case c.KNN.MaxDataPoints < c.KNN.K:
		return errors.NewValidationError("knn.max_data_points", "must be at least k", c.KNN.MaxDataPoints)
	case c.NaiveBayes.NumClasses <= 0:
		return errors.NewValidationError("naive_bayes.num_classes", "must be positive", c.NaiveBayes.NumClasses)
	case len(c.NaiveBayes.FeatureMaxValues) == 0 && c.NaiveBayes.Bins <= 0:
		return errors.NewValidationError("naive_bayes.bins", "must be positive when feature_max_values is empty", c.NaiveBayes.Bins)
	}
	for i, v := range c.NaiveBayes.FeatureMaxValues {
		if v <= 0 {
			return errors.NewValidationError("naive_bayes.feature_max_values", "entries must be positive", i)
		}
	}
	if err := c.Perceptron.validate("perceptron", false); err != nil {
		return err
	}
	if err := c.Logistic.validate("logistic", true); err != nil {
		return err
	}
	if c.Regression.Capacity < 2 {
		return errors.NewValidationError("regression.capacity", "must be at least 2", c.Regression.Capacity)
	}
	if _, ok := log.ParseLevel(c.Log.Level); !ok {
		return errors.NewValidationError("log.level", "unknown level", c.Log.Level)
	}
	if c.Log.Format != "zerolog" && c.Log.Format != "slog" {
		return errors.NewValidationError("log.format", "must be zerolog or slog", c.Log.Format)
	}
	return nil
}

func (l LinearConfig) validate(section string, threshold bool) error {
	if l.NumFeatures <= 0 {
		return errors.NewValidationError(section+".num_features", "must be positive", l.NumFeatures)
	}
	if l.LearningRate <= 0 {
		return errors.NewValidationError(section+".learning_rate", "must be positive", l.LearningRate)
	}
	if threshold && (l.Threshold <= 0 || l.Threshold >= 1) {
		return errors.NewValidationError(section+".threshold", "must be in (0, 1)", l.Threshold)
	}
	return nil
}

// Options converts the section into linear_model options.
func (l LinearConfig) Options(extra ...linear_model.Option) []linear_model.Option {
	opts := []linear_model.Option{linear_model.WithLearningRate(l.LearningRate)}
	if l.Threshold != 0 {
		opts = append(opts, linear_model.WithThreshold(l.Threshold))
	}
	return append(opts, extra...)
}

// Options converts the section into linear regressor options.
func (r RegressionConfig) Options(extra ...linear.Option) []linear.Option {
	var opts []linear.Option
	if r.IncrementalSums {
		opts = append(opts, linear.WithIncrementalSums())
	}
	return append(opts, extra...)
}

// MaxValues returns the explicit value ranges, or numFeatures copies
// of Bins when none are configured.
func (n NaiveBayesConfig) MaxValues(numFeatures int) []int {
	if len(n.FeatureMaxValues) > 0 {
		return append([]int(nil), n.FeatureMaxValues...)
	}
	out := make([]int, numFeatures)
	for i := range out {
		out[i] = n.Bins
	}
	return out
}

// Setup installs the configured logging backend as the global provider.
func (l LogConfig) Setup() error {
	level, ok := log.ParseLevel(l.Level)
	if !ok {
		return errors.NewValidationError("log.level", "unknown level", l.Level)
	}
	switch l.Format {
	case "slog":
		return log.SetupLogger(l.Level)
	case "zerolog", "":
		log.SetProvider(log.NewZerologProvider(os.Stderr, level))
		return nil
	default:
		return errors.NewValidationError("log.format", "must be zerolog or slog", l.Format)
	}
}
