package loggy

import (
	"context"

	"github.com/tildaslashalef/meetparse/internal/ulid"
)

type contextKey string

const (
	loggerKey  contextKey = "logger"
	parseIDKey contextKey = "parse_id"
)

// FromContext retrieves the logger from the context, falling back to the global logger
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return globalLogger
	}

	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}

	return globalLogger
}

// WithLogger returns a new context with the logger attached
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// GetParseID retrieves the parse ID from the context
func GetParseID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if id, ok := ctx.Value(parseIDKey).(string); ok {
		return id
	}

	return ""
}

// WithParseID tags ctx with a new parse ID and attaches a logger carrying it
func WithParseID(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	id := ulid.ParseID()
	ctx = context.WithValue(ctx, parseIDKey, id)

	if logger := FromContext(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With("parse_id", id))
	}
	return ctx
}
