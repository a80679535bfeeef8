package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "requestID"

// LevelTrace is below debug: per-stage pipeline detail.
const LevelTrace = slog.LevelDebug - 4

// Format selects the console handler.
type Format string

const (
	FormatCompact Format = "compact"
	FormatJSON    Format = "json"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	Configure(os.Stderr, slog.LevelInfo, FormatCompact)
}

// Configure replaces the process logger.
func Configure(w io.Writer, level slog.Level, format Format) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = NewCompactHandler(w, opts)
	}
	logger.Store(slog.New(handler))
}

// Logger returns the current process logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// ParseLevel maps a verbosity name ("trace", "debug", "info", "warn",
// "error") or a -v count to a level. An explicit name wins over the count.
func ParseLevel(verbosity string, verboseCount int) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(verbosity)) {
	case "":
		switch {
		case verboseCount >= 2:
			return LevelTrace, nil
		case verboseCount == 1:
			return slog.LevelDebug, nil
		default:
			return slog.LevelInfo, nil
		}
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown verbosity %q", verbosity)
	}
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func withRequestID(ctx context.Context, args []any) []any {
	requestID := GetRequestID(ctx)
	if requestID != "" {
		return append([]any{"requestID", requestID}, args...)
	}
	return args
}

// Trace logs at TRACE level (very verbose, debug-time only)
func Trace(msg string, args ...any) {
	Logger().Log(context.Background(), LevelTrace, msg, args...)
}

// Debug logs at DEBUG level (internal component behavior)
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// DebugContext logs at DEBUG level with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	Logger().DebugContext(ctx, msg, withRequestID(ctx, args)...)
}

// Info logs at INFO level (user-facing operations)
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// InfoContext logs at INFO level with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	Logger().InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

// Warn logs at WARN level (should be monitored)
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// WarnContext logs at WARN level with context
func WarnContext(ctx context.Context, msg string, args ...any) {
	Logger().WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

// Error logs at ERROR level
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// ErrorContext logs at ERROR level with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Logger().ErrorContext(ctx, msg, withRequestID(ctx, args)...)
}
