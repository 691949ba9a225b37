package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/divvyhq/divvy/internal/auth"
)

const (
	// userIDKey is the gin context key for the authenticated user ID.
	userIDKey = "auth.user_id"
	// emailKey is the gin context key for the authenticated user's email.
	emailKey = "auth.email"
)

// UserID extracts the authenticated user ID from the request context.
// Returns empty string if not set.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// Email extracts the authenticated user's email from the request context.
// Returns empty string if not set.
func Email(c *gin.Context) string {
	return c.GetString(emailKey)
}

// RequireAuth validates the Bearer token on every request and stores the
// user ID and email in the context for handlers downstream.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}
