package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// UserIDKey is the context key for the resolved user ID.
const UserIDKey contextKey = "user_id"

// DefaultUserID is used when no X-User-Id header is present. The broker
// has no account system; the frontend identifies users by header.
const DefaultUserID = "demo-user"

// UserExtractor resolves the user ID from the X-User-Id header, falling
// back to DefaultUserID.
func UserExtractor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if userID == "" {
			userID = DefaultUserID
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID retrieves the user ID from the request context.
func GetUserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDKey).(string); ok {
		return v
	}
	return DefaultUserID
}
