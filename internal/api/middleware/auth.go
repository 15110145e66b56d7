// server/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"facility-accounts-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate.
const (
	KeyAccountID   = "account_id"
	KeyUsername    = "username"
	KeyIsStaff     = "is_staff"
	KeyIsSuperuser = "is_superuser"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.JWTClaims, error)
}

// Authenticate là middleware xác thực token JWT.
// Nó kiểm tra tính hợp lệ của token và đưa thông tin account vào context.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := parser.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(KeyAccountID, claims.Subject)
		c.Set(KeyUsername, claims.Username)
		c.Set(KeyIsStaff, claims.IsStaff)
		c.Set(KeyIsSuperuser, claims.IsSuperuser)

		c.Next()
	}
}

// RequireStaff only lets staff accounts through. Must run after Authenticate.
func RequireStaff() gin.HandlerFunc {
	return requireFlag(KeyIsStaff)
}

// RequireSuperuser only lets superusers through. Must run after Authenticate.
func RequireSuperuser() gin.HandlerFunc {
	return requireFlag(KeyIsSuperuser)
}

func requireFlag(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(key)
		if !exists {
			// Lỗi này không nên xảy ra nếu Authenticate được gọi trước
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Account flags not found in context"})
			return
		}

		allowed, ok := value.(bool)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Account flag has an invalid type"})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}
		c.Next()
	}
}
