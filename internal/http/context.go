package http

import (
	"context"
)

type contextKey string

const entityIDContextKey contextKey = "entity_id"

// ContextWithEntityID injects the record identifier resolved from the
// request path.
func ContextWithEntityID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, entityIDContextKey, id)
}

// EntityIDFromContext extracts a record identifier previously associated
// with the context.
func EntityIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(entityIDContextKey).(string)
	return id, ok
}
