package log

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Entry is one captured log call.
type Entry struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// TestLogger captures log calls in memory so tests can assert on what a
// model reported. Loggers derived through With share the same capture.
type TestLogger struct {
	level   Level
	fields  []any
	entries *[]Entry
}

// NewTestLogger returns a TestLogger that records calls at or above level.
func NewTestLogger(level Level) *TestLogger {
	return &TestLogger{level: level, entries: &[]Entry{}}
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) { t.record(LevelDebug, msg, fields) }

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) { t.record(LevelInfo, msg, fields) }

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) { t.record(LevelWarn, msg, fields) }

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) { t.record(LevelError, msg, fields) }

// With implements Logger.With.
func (t *TestLogger) With(fields ...any) Logger {
	merged := make([]any, 0, len(t.fields)+len(fields))
	merged = append(merged, t.fields...)
	merged = append(merged, fields...)
	return &TestLogger{level: t.level, fields: merged, entries: t.entries}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) record(level Level, msg string, fields []any) {
	if level < t.level {
		return
	}
	m := make(map[string]any, (len(t.fields)+len(fields))/2+1)
	collect(m, t.fields)
	collect(m, fields)
	*t.entries = append(*t.entries, Entry{Level: level, Message: msg, Fields: m})
}

func collect(m map[string]any, fields []any) {
	for i := 0; i < len(fields); i++ {
		if err, ok := fields[i].(error); ok {
			m[ErrAttrKey] = err.Error()
			continue
		}
		key := fmt.Sprint(fields[i])
		if i+1 < len(fields) {
			m[key] = fields[i+1]
			i++
		} else {
			m[key] = nil
		}
	}
}

// Entries returns the captured entries in call order.
func (t *TestLogger) Entries() []Entry {
	out := make([]Entry, len(*t.entries))
	copy(out, *t.entries)
	return out
}

// ContainsMessage reports whether any entry message contains msg.
func (t *TestLogger) ContainsMessage(msg string) bool {
	for _, e := range *t.entries {
		if strings.Contains(e.Message, msg) {
			return true
		}
	}
	return false
}

// ContainsField reports whether any entry carries key with the given value.
func (t *TestLogger) ContainsField(key string, value any) bool {
	for _, e := range *t.entries {
		if v, ok := e.Fields[key]; ok && reflect.DeepEqual(v, value) {
			return true
		}
	}
	return false
}

// CountLevel returns the number of entries recorded at level.
func (t *TestLogger) CountLevel(level Level) int {
	n := 0
	for _, e := range *t.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Clear drops every captured entry.
func (t *TestLogger) Clear() {
	*t.entries = (*t.entries)[:0]
}

// TestLoggerProvider hands out loggers that share one TestLogger capture.
type TestLoggerProvider struct {
	Logger *TestLogger
}

// NewTestLoggerProvider returns a provider backed by a fresh TestLogger.
func NewTestLoggerProvider(level Level) *TestLoggerProvider {
	return &TestLoggerProvider{Logger: NewTestLogger(level)}
}

// GetLogger implements LoggerProvider.
func (p *TestLoggerProvider) GetLogger() Logger { return p.Logger }

// GetLoggerWithName implements LoggerProvider.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.Logger.With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.
func (p *TestLoggerProvider) SetLevel(level Level) { p.Logger.level = level }
