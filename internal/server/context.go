package server

import (
	"context"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// setRequestID adds the request ID to context
func setRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext retrieves the request ID, or "" if none is set
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
