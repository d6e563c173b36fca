// Package log provides structured logging for the training pipeline.
//
// It defines a minimal, slog-shaped Logger interface so call sites stay
// backend-agnostic, with a default provider backed by zerolog's console
// writer. Named component loggers carry a "component" field.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger defines a structured logging interface with key-value fields,
// compatible in shape with Go's log/slog.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)
	// Info logs general operational information.
	Info(msg string, fields ...any)
	// Warn logs potentially problematic situations.
	Warn(msg string, fields ...any)
	// Error logs error conditions. If a field value is an error,
	// it is attached as a structured "error" attribute.
	Error(msg string, fields ...any)
	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger
}

var (
	mu            sync.RWMutex
	defaultLogger Logger = newZerologLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
)

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With("component", name)
}

// SetOutput redirects the default logger to w. Used by tests and by the
// driver to silence logs in headless runs.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = newZerologLogger(zerolog.New(w).With().Timestamp().Logger())
}

// SetLevel sets the minimum level emitted by the default logger.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

type zerologLogger struct {
	zl zerolog.Logger
}

func newZerologLogger(zl zerolog.Logger) *zerologLogger {
	return &zerologLogger{zl: zl}
}

func (l *zerologLogger) Debug(msg string, fields ...any) { l.emit(l.zl.Debug(), msg, fields) }
func (l *zerologLogger) Info(msg string, fields ...any)  { l.emit(l.zl.Info(), msg, fields) }
func (l *zerologLogger) Warn(msg string, fields ...any)  { l.emit(l.zl.Warn(), msg, fields) }
func (l *zerologLogger) Error(msg string, fields ...any) { l.emit(l.zl.Error(), msg, fields) }

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for k, v := range pairs(fields) {
		ctx = ctx.Interface(k, v)
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	for k, v := range pairs(fields) {
		if err, ok := v.(error); ok {
			ev = ev.AnErr(k, err)
			continue
		}
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// pairs converts a variadic key-value list into a map, ignoring a
// trailing key without a value.
func pairs(fields []any) map[string]any {
	m := make(map[string]any, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		m[key] = fields[i+1]
	}
	return m
}
