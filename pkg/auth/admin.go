package auth

import (
	"context"
	"net/http"
	"slices"
)

const isAdminKey contextKey = "is_admin"

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext returns whether the authenticated user may manage the product list.
// Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// AdminMiddleware marks the request as admin when the authenticated user id is listed.
// With allowDev the development user is treated as admin regardless of the list.
func AdminMiddleware(adminIDs []string, allowDev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			isAdmin := ok && (slices.Contains(adminIDs, userID) || (allowDev && userID == DevUserID))
			next.ServeHTTP(w, r.WithContext(WithIsAdmin(r.Context(), isAdmin)))
		})
	}
}
