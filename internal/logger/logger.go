// Package logger is the process-wide structured logger for scout.
// It wraps log/slog so every package logs through one configurable handler.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	current = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
)

// Options configures the logger.
type Options struct {
	Debug  bool         // Log at debug level
	Quiet  bool         // Log errors only; wins over Debug
	JSON   bool         // Use the JSON handler instead of text
	Output io.Writer    // Defaults to stderr
	Logger *slog.Logger // Use this logger as is and ignore the other fields
}

// Init replaces the logger according to opts.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if opts.Logger != nil {
		current = opts.Logger
		return
	}

	switch {
	case opts.Quiet:
		level.Set(slog.LevelError)
	case opts.Debug:
		level.Set(slog.LevelDebug)
	default:
		level.Set(slog.LevelInfo)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		current = slog.New(slog.NewJSONHandler(out, handlerOpts))
	} else {
		current = slog.New(slog.NewTextHandler(out, handlerOpts))
	}
}

// SetLevel changes the minimum level without replacing the handler.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel accepts debug, info, warn or error (any case).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Default returns the logger currently in use.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// With returns the current logger with attrs attached.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

func Info(msg string, args ...any) { Default().Info(msg, args...) }

func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

func Error(msg string, args ...any) { Default().Error(msg, args...) }
