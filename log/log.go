// Package log is a thin, minimal structured logger: a level type plus a
// small logger carrying a component name and key/value pairs, backed by
// log/slog rather than a third-party logging framework.
package log

import (
	"context"
	"log/slog"
	"os"
)

// Logger logs at a minimum Level through an underlying slog.Logger,
// tagging every record with a component name.
type Logger struct {
	component string
	min       Level
	slog      *slog.Logger
}

var defaultHandler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})

// New returns a Logger for component, logging at min and above.
func New(component string, min Level) *Logger {
	return &Logger{component: component, min: min, slog: slog.New(defaultHandler)}
}

// With returns a child Logger with the same component and level, sharing
// the same sink, present mainly so call sites can attach handle-scoped
// loggers without reconfiguring the sink per Handle.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{component: l.component, min: l.min, slog: l.slog.With(kv...)}
}

func (l *Logger) log(level Level, slogLevel slog.Level, msg string, kv []any) {
	if level < l.min {
		return
	}
	args := make([]any, 0, len(kv)+2)
	args = append(args, "component", l.component)
	args = append(args, kv...)
	l.slog.Log(context.Background(), slogLevel, msg, args...)
}

func (l *Logger) Trace(msg string, kv ...any) { l.log(LevelTrace, slog.LevelDebug-4, msg, kv) }
func (l *Logger) Debug(msg string, kv ...any) { l.log(LevelDebug, slog.LevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(LevelInfo, slog.LevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(LevelWarn, slog.LevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(LevelError, slog.LevelError, msg, kv) }
func (l *Logger) Fatal(msg string, kv ...any) { l.log(LevelFatal, slog.LevelError+4, msg, kv) }
