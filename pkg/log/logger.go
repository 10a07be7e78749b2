package log

import (
	"context"
	"log/slog"
	"os"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// SetupLogger configures log/slog as the process-wide backend: JSON on stdout,
// Cloud Logging attribute names, and stack traces extracted from
// cockroachdb/errors values. Models created afterwards log through it.
func SetupLogger(loglevel string) error {
	level, ok := ParseLevel(loglevel)
	if !ok {
		return errors.NewValidationError("loglevel", "must be one of debug, info, warn, error", loglevel)
	}

	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     slog.Level(level),
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr.Key = "severity"
			case slog.MessageKey:
				attr.Key = "message"
			case slog.SourceKey:
				attr.Key = "logging.googleapis.com/sourceLocation"
			}
			return attr
		},
	}
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(os.Stdout, &ops))
	slog.SetDefault(slog.New(handler))
	SetProvider(NewSlogProvider(handler))
	return nil
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogLogger implements Logger on top of log/slog.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps handler in a Logger.
func NewSlogLogger(handler slog.Handler) *SlogLogger {
	return &SlogLogger{l: slog.New(handler)}
}

// Debug implements Logger.Debug.
func (s *SlogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }

// Info implements Logger.Info.
func (s *SlogLogger) Info(msg string, fields ...any) { s.l.Info(msg, fields...) }

// Warn implements Logger.Warn.
func (s *SlogLogger) Warn(msg string, fields ...any) { s.l.Warn(msg, errFirst(fields)...) }

// Error implements Logger.Error.
func (s *SlogLogger) Error(msg string, fields ...any) { s.l.Error(msg, errFirst(fields)...) }

// With implements Logger.With.
func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{l: s.l.With(fields...)}
}

// Enabled implements Logger.Enabled.
func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// errFirst turns a leading bare error into an ErrAttr so ErrFmtHandler sees it.
func errFirst(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	if err, ok := fields[0].(error); ok {
		out := make([]any, 0, len(fields))
		out = append(out, ErrAttr(err))
		return append(out, fields[1:]...)
	}
	return fields
}
