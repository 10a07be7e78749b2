package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelWarn)
)

func init() {
	errors.SetZerologWarnFunc(func(w error) {
		GetLoggerWithName("warnings").Warn(w.Error(),
			"warning", w,
			ErrorTypeKey, fmt.Sprintf("%T", w),
		)
	})
}

// SetProvider replaces the process-wide provider. Models capture their logger
// at construction time, so call this before creating them.
func SetProvider(p LoggerProvider) {
	if p == nil {
		return
	}
	providerMu.Lock()
	provider = p
	providerMu.Unlock()
}

// GetProvider returns the process-wide provider.
func GetProvider() LoggerProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider
}

// GetLogger returns the default logger of the current provider.
func GetLogger() Logger {
	return GetProvider().GetLogger()
}

// GetLoggerWithName returns a logger tagged with the component name.
func GetLoggerWithName(name string) Logger {
	return GetProvider().GetLoggerWithName(name)
}

// ZerologProvider creates ZerologLogger values sharing one writer.
type ZerologProvider struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewZerologProvider returns a provider writing JSON lines to w.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{w: w, level: level}
}

// GetLogger implements LoggerProvider.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return NewZerologLogger(p.w, p.level)
}

// GetLoggerWithName implements LoggerProvider.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// SlogProvider creates SlogLogger values over one handler.
type SlogProvider struct {
	handler slog.Handler
	level   *slog.LevelVar
}

// NewSlogProvider returns a provider backed by handler. SetLevel only filters
// on top of whatever level the handler itself enforces.
func NewSlogProvider(handler slog.Handler) *SlogProvider {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelDebug)
	return &SlogProvider{handler: handler, level: lv}
}

// GetLogger implements LoggerProvider.
func (p *SlogProvider) GetLogger() Logger {
	return NewSlogLogger(&levelFilter{Handler: p.handler, level: p.level})
}

// GetLoggerWithName implements LoggerProvider.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.
func (p *SlogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

type levelFilter struct {
	slog.Handler
	level *slog.LevelVar
}

func (f *levelFilter) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= f.level.Level() && f.Handler.Enabled(ctx, l)
}

func (f *levelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelFilter{Handler: f.Handler.WithAttrs(attrs), level: f.level}
}

func (f *levelFilter) WithGroup(name string) slog.Handler {
	return &levelFilter{Handler: f.Handler.WithGroup(name), level: f.level}
}
