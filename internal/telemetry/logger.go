// Package telemetry provides the CLI's structured logger, per-invocation
// correlation IDs and a log handler that scrubs secret values.
package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"
)

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// NewLogger creates a text logger whose output passes through redact.
// Debug level is used when verbose is set, warnings and errors otherwise.
func NewLogger(w io.Writer, verbose bool, redact *RedactFilter) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	if redact != nil {
		handler = redact.Wrap(handler)
	}
	return slog.New(handler)
}

// WithCorrelationID adds a correlation ID to the context.
// If id is empty, a new ULID is generated.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = ulid.Make().String()
	}
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID retrieves the correlation ID from context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// InvocationLogger returns a logger carrying the command name and the
// context's correlation ID.
func InvocationLogger(ctx context.Context, logger *slog.Logger, command string) *slog.Logger {
	attrs := []any{
		slog.String("command", command),
	}
	if id := CorrelationID(ctx); id != "" {
		attrs = append(attrs, slog.String("correlation_id", id))
	}
	return logger.With(attrs...)
}
