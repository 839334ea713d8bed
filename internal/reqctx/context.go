package reqctx

import (
	"context"
	"net/http"
)

// ContextKey is the type used for context keys
type ContextKey string

// ContextKeyRequestID is the key for the request ID in the context
const ContextKeyRequestID ContextKey = "requestID"

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// RequestID retrieves the request ID from a context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// FromRequest retrieves the request ID from the request context.
func FromRequest(r *http.Request) string {
	return RequestID(r.Context())
}
