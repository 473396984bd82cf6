package logging

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	sourceKey    contextKey = "source"
)

// WithSessionID tags the context with the viewer session it belongs to.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithSource records where captured lines came from (a file path or a
// command line).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetSessionID retrieves the session ID from the context.
// Returns empty string if not present.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSource returns the capture source, or empty string.
func GetSource(ctx context.Context) string {
	if src, ok := ctx.Value(sourceKey).(string); ok {
		return src
	}
	return ""
}
