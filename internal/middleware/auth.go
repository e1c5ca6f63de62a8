package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripwise/internal/domain"
	"tripwise/internal/service"
)

const (
	ContextKeyCallerID = "caller_id"
	ContextKeyClaims   = "claims"
)

// AuthMiddleware returns Gin middleware that verifies the caller ID token and
// injects the caller identity. Requests without a valid token are rejected
// with 401 before reaching any handler.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": string(domain.CodeUnauthenticated), "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": string(domain.CodeUnauthenticated), "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyCallerID, claims.CallerID())
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetCallerID extracts the caller ID from the Gin context.
func GetCallerID(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyCallerID)
	if !exists {
		return "", domain.ErrUnauthenticated
	}
	id, _ := val.(string)
	if id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}
