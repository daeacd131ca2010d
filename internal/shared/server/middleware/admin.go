package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ideaspark-backend/internal/shared/server/respond"
)

// AdminChecker reports whether a user currently holds the admin role.
// The check is performed per request so revocations apply immediately.
type AdminChecker func(ctx context.Context, userID string) (bool, error)

// RequireAdmin rejects requests from non-admin identities. Guests are
// never admins.
func RequireAdmin(isAdmin AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsGuest(c) {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
			return
		}
		userID := UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		ok, err := isAdmin(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify role", nil)
			return
		}
		if !ok {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
			return
		}
		c.Next()
	}
}
