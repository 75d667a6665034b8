package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-admin-service/internal/models"
	"storefront-admin-service/internal/sessions"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin_session"

// SessionAuth rejects requests without a live admin session. The token is
// read from the session cookie or from an Authorization Bearer header. On
// success the admin display name is stored in the gin context.
func SessionAuth(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)

		session, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "UNAUTHORIZED",
					Message: "A valid admin session is required",
				},
			})
			c.Abort()
			return
		}

		c.Set("session_token", session.Token)
		c.Set("admin_name", session.Name)
		c.Next()
	}
}

// ExtractToken returns the session token from the cookie or the
// Authorization Bearer header, preferring the cookie.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetAdminName retrieves the logged-in admin's display name from context.
func GetAdminName(c *gin.Context) string {
	return c.GetString("admin_name")
}
