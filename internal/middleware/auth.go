// Package middleware provides HTTP middleware functions.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/idleforest/team-service/internal/config"
)

// ContextUserIDKey is the gin context key holding the authenticated user ID.
const ContextUserIDKey = "auth_user_id"

// bearerPrefix is the expected Authorization header scheme.
const bearerPrefix = "Bearer "

// Auth returns a middleware that validates the bearer JWT on the request and
// stores the caller's user ID (the "sub" claim) in the gin context. Tokens
// are minted by the external auth provider; only HS256 is accepted.
func Auth(cfg config.AuthConfig, logger *zap.SugaredLogger) gin.HandlerFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}, opts...)

		if err != nil || !token.Valid {
			logger.Debugw("rejected bearer token",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"error", err,
			)
			abortUnauthorized(c)
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			logger.Debugw("bearer token has no subject", "client_ip", c.ClientIP())
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserIDKey, subject)
		c.Next()
	}
}

// UserID returns the authenticated user ID stored by Auth.
func UserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// abortUnauthorized aborts the request with a 401 error response.
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "authentication required",
		},
	})
}
