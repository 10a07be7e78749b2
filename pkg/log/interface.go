// Package log provides a structured logging interface for edgeml models.
//
// The Logger interface is slog-compatible so that the backend can be swapped
// without touching model code. Two backends ship with the package: a zerolog
// backend (the default, JSON lines on stderr) and a log/slog backend whose
// handler expands cockroachdb/errors stack traces.
//
// Models fetch a named logger once at construction and tag it with their
// instance id:
//
//	logger := log.GetLoggerWithName("neighbors.knn").With(
//	    log.ModelNameKey, "KNNClassifier",
//	    log.EstimatorIDKey, id,
//	)
//	logger.Debug("sample evicted", log.CapacityKey, 32)
package log

import (
	"context"
	"strings"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. For Error, an error value
// given as the first field is attached as the record's error and, when it
// carries a stack trace, the trace is emitted too.
type Logger interface {
	// Debug logs diagnostic details such as evictions or skipped samples.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the model from working.
	Warn(msg string, fields ...any)

	// Error logs error conditions.
	//
	// Example:
	//   logger.Error("coefficient save failed", err,
	//       log.OperationKey, log.OperationSave,
	//   )
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted. Use it to skip
	// building expensive fields on hot paths such as Predict.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" (any case) to a Level.
// Unknown names fall back to LevelInfo and ok is false.
func ParseLevel(name string) (level Level, ok bool) {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// LoggerProvider creates loggers. Swap the process-wide provider with SetProvider.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers created by this provider.
	SetLevel(level Level)
}
