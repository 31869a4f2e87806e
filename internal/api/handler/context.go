// internal/api/handler/context.go
package handler

import "context"

type contextKey string

const externalIDKey contextKey = "external_id"

// WithExternalID stores the caller's external auth identity in the context.
// Set by the auth middleware, read once per request by handlers.
func WithExternalID(ctx context.Context, externalID string) context.Context {
	return context.WithValue(ctx, externalIDKey, externalID)
}

// ExternalIDFromContext returns the external auth identity stored by the
// auth middleware, if any.
func ExternalIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(externalIDKey).(string)
	return id, ok && id != ""
}
