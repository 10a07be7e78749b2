package log

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// ZerologLogger implements Logger on top of github.com/rs/zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	e := l.zl.Warn()
	e, fields = attachLeadingError(e, fields)
	emit(e, msg, fields)
}

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	e := l.zl.Error()
	e, fields = attachLeadingError(e, fields)
	emit(e, msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return l.zl.GetLevel() <= toZerologLevel(level)
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}

// attachLeadingError moves a leading error field onto the event, together with
// its structured detail and stack trace when available.
func attachLeadingError(e *zerolog.Event, fields []any) (*zerolog.Event, []any) {
	if e == nil || len(fields) == 0 {
		return e, fields
	}
	err, ok := fields[0].(error)
	if !ok {
		return e, fields
	}
	e = e.Err(err)
	var detail zerolog.LogObjectMarshaler
	if errors.As(err, &detail) {
		e = e.Object("error_detail", detail)
	}
	if st := extractStacktrace(err); st != "" {
		e = e.Str(StacktraceAttrKey, st)
	}
	return e, fields[1:]
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
