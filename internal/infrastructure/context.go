package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey string

const (
	// TraceIDContextKey holds the correlation ID of a request or CLI run
	TraceIDContextKey contextKey = "trace_id"
	// DatasetContextKey holds the name of the dataset being analysed
	DatasetContextKey contextKey = "dataset"
)

// WithTraceID adds a trace ID to the context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) string {
	return stringValue(ctx, TraceIDContextKey)
}

// EnsureTraceID returns ctx unchanged when it carries a trace ID and
// otherwise attaches a fresh UUID. CLI runs use it so every log line of one
// invocation correlates.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, uuid.NewString())
}

// WithDataset records the dataset an analysis runs on. Loggers built by
// NewLogger add it to every record logged with that context.
func WithDataset(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, DatasetContextKey, name)
}

// GetDataset retrieves the dataset name from context
func GetDataset(ctx context.Context) string {
	return stringValue(ctx, DatasetContextKey)
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
