package middleware

import (
	"net/http"
	"strings"

	"retail_pos/internal/auth"
	"retail_pos/internal/redis"

	"github.com/gin-gonic/gin"
)

// RequireAuth reads the access_token cookie (or a Bearer header) and
// rejects missing, invalid or revoked tokens with 401.
func RequireAuth(secret string, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(auth.CookieName)
		if err != nil || tokenString == "" {
			if header := c.GetHeader("Authorization"); header != "" {
				tokenString = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			c.Abort()
			return
		}

		if cache != nil {
			revoked, err := cache.IsTokenRevoked(claims.ID)
			if err == nil && revoked {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token revoked"})
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token_id", claims.ID)
		c.Next()
	}
}

// RequireRole gates a group on the role claim; failures are 403, not a
// redirect.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "access forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
