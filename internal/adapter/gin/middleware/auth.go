package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpool-service/internal/usecase/auth"
	"carpool-service/pkg/logger"
)

// UserKey is the gin context key holding the resolved user record.
const UserKey = "auth_user"

// Auth returns a middleware that gates privileged handlers behind token
// verification. The wrapped handler only runs after the bearer token is
// validated and resolved to a fresh user record.
func Auth(verifier auth.TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			log.Warn("missing or malformed authorization header", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"message": "missing or invalid bearer token",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		u, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.Warn("token verification rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(UserKey, u)

		// Tag downstream logs with the caller's UID
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, u.UID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
