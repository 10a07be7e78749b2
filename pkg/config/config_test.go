package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadOrDefault("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.KNN.K != 3 {
			t.Errorf("KNN.K = %d, want 3", cfg.KNN.K)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Regression.Capacity != 100 {
			t.Errorf("Regression.Capacity = %d, want 100", cfg.Regression.Capacity)
		}
	})
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgeml.yaml")
	data := []byte(`
knn:
  k: 5
  max_data_points: 64
regression:
  incremental_sums: true
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.KNN.K != 5 || cfg.KNN.MaxDataPoints != 64 {
		t.Errorf("KNN = %+v", cfg.KNN)
	}
	if cfg.KNN.NumFeatures != 3 {
		t.Errorf("KNN.NumFeatures = %d, want default 3", cfg.KNN.NumFeatures)
	}
	if !cfg.Regression.IncrementalSums {
		t.Error("Regression.IncrementalSums not set")
	}
	if len(cfg.Regression.Options()) != 1 {
		t.Errorf("Regression.Options() len = %d, want 1", len(cfg.Regression.Options()))
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "zerolog" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "edgeml.yaml")
	cfg := Default()
	cfg.Logistic.Threshold = 0.7
	cfg.NaiveBayes.FeatureMaxValues = []int{4, 4, 2}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Logistic.Threshold != 0.7 {
		t.Errorf("Logistic.Threshold = %v, want 0.7", got.Logistic.Threshold)
	}
	if mv := got.NaiveBayes.MaxValues(3); len(mv) != 3 || mv[2] != 2 {
		t.Errorf("MaxValues = %v", mv)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"knn k", func(c *Config) { c.KNN.K = 0 }, "knn.k"},
		{"knn capacity below k", func(c *Config) { c.KNN.MaxDataPoints = 1 }, "knn.max_data_points"},
		{"nb classes", func(c *Config) { c.NaiveBayes.NumClasses = 0 }, "naive_bayes.num_classes"},
		{"nb bins", func(c *Config) { c.NaiveBayes.Bins = 0 }, "naive_bayes.bins"},
		{"nb max values", func(c *Config) { c.NaiveBayes.FeatureMaxValues = []int{3, 0} }, "naive_bayes.feature_max_values"},
		{"perceptron rate", func(c *Config) { c.Perceptron.LearningRate = -1 }, "perceptron.learning_rate"},
		{"logistic threshold", func(c *Config) { c.Logistic.Threshold = 1 }, "logistic.threshold"},
		{"regression capacity", func(c *Config) { c.Regression.Capacity = 1 }, "regression.capacity"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "text" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			var ve *errors.ValidationError
			if err := cfg.Validate(); !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if ve.ParamName != tt.param {
				t.Errorf("param = %q, want %q", ve.ParamName, tt.param)
			}
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("knn:\n  k: -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}

	if err := os.WriteFile(path, []byte("knn: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLogSetup(t *testing.T) {
	prev := log.GetProvider()
	t.Cleanup(func() { log.SetProvider(prev) })

	if err := (LogConfig{Level: "info", Format: "zerolog"}).Setup(); err != nil {
		t.Fatal(err)
	}
	if _, ok := log.GetProvider().(*log.ZerologProvider); !ok {
		t.Errorf("provider = %T, want *log.ZerologProvider", log.GetProvider())
	}
	if err := (LogConfig{Level: "info", Format: "slog"}).Setup(); err != nil {
		t.Fatal(err)
	}
	if _, ok := log.GetProvider().(*log.SlogProvider); !ok {
		t.Errorf("provider = %T, want *log.SlogProvider", log.GetProvider())
	}
	if err := (LogConfig{Level: "info", Format: "xml"}).Setup(); err == nil {
		t.Error("expected error for unknown format")
	}
}
