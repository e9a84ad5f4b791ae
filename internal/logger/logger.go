package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// InitLogger installs the configured handler as slog.Default, writing to stdout.
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the configured handler writing to w.
// Every record carries the service, version and environment attributes.
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	slog.SetDefault(slog.New(NewHandler(cfg, w)))
}

// NewHandler builds the JSON or text handler described by cfg
func NewHandler(cfg Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var h slog.Handler
	if cfg.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return h.WithAttrs(cfg.BaseAttributes())
}

// Info logs at info level on the default logger
func Info(msg string, args ...any) {
	slog.Default().Info(msg, args...)
}

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// GetRequestID returns the request ID or an empty string
func GetRequestID(ctx context.Context) string {
	id, _ := RequestIDFromContext(ctx)
	return id
}

// FromContext returns a logger that includes the request_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := RequestIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyRequestID, id)
	}
	return slog.Default()
}

// Debug logs at debug level on the default logger
func Debug(msg string, args ...any) {
	slog.Default().Debug(msg, args...)
}

// Warn logs at warn level on the default logger
func Warn(msg string, args ...any) {
	slog.Default().Warn(msg, args...)
}

// Error logs at error level on the default logger
func Error(msg string, args ...any) {
	slog.Default().Error(msg, args...)
}
