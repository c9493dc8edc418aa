package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kweston/stridelog/internal/logger"
)

// userIDHeader carries the caller's identity. Authentication itself is
// owned by the external identity provider sitting in front of this
// service; this middleware only requires and propagates the resolved ID.
const userIDHeader = "X-User-ID"

// userIDKey is the Gin context key for the resolved user ID.
const userIDKey = "user_id"

// RequireUser returns a middleware that rejects requests without a user
// identity and injects the user ID into the request-scoped logger.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + userIDHeader + " header",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Request = c.Request.WithContext(logger.SetUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// UserID extracts the resolved user ID from the Gin context.
// Parameters:
//   - c: Gin request context.
// Returns:
//   - string: user ID, empty if the request was not authenticated.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
