package logger

import (
	"context"
	"log/slog"
)

type operationIDKey struct{}

// WithOperationID returns a context that tags log records with id.
func WithOperationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, operationIDKey{}, id)
}

// OperationIDFrom returns the operation ID stored in ctx, if any.
func OperationIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(operationIDKey{}).(string)
	return id, ok && id != ""
}

func operationExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := OperationIDFrom(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return OperationID(id), true
}
