package middleware

import "context"

// contextKey is a private key type for request-scoped values.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	orgIDKey     = contextKey("orgID")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetOrgIDFromCtx retrieves the authenticated caller's org ID from the
// context. Every tenant-scoped handler resolves its org through this; there
// is no way for a request to name another org.
func GetOrgIDFromCtx(ctx context.Context) (string, bool) {
	orgID, ok := ctx.Value(orgIDKey).(string)
	if !ok || orgID == "" {
		return "", false
	}
	return orgID, true
}
