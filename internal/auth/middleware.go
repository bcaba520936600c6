package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EmailContextKey is the gin context key holding the authenticated
// coordinator's email.
const EmailContextKey = "coordinator_email"

// AuthMiddleware provides session token authentication middleware
type AuthMiddleware struct {
	service *AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service *AuthService) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth validates session tokens and sets the coordinator context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(EmailContextKey, claims.Email)
		// Propagate into the request context so downstream loggers pick
		// the coordinator up without a gin dependency.
		ctx := context.WithValue(c.Request.Context(), EmailContextKey, claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// EmailFromContext extracts the authenticated coordinator email set by
// RequireAuth.
func EmailFromContext(c *gin.Context) (string, bool) {
	email, ok := c.Get(EmailContextKey)
	if !ok {
		return "", false
	}
	s, ok := email.(string)
	return s, ok && s != ""
}
