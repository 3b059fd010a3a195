package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SscSPs/hoa_billing_app/internal/utils"
)

const (
	// callerKey holds the authenticated caller (JWT subject or "api-token").
	callerKey = contextKey("caller")
	// authMethodKey is set in the gin context once a request is authenticated.
	authMethodKey = "authMethod"
)

// GetCallerFromCtx returns the authenticated caller stored by the auth middlewares.
func GetCallerFromCtx(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerKey).(string)
	return caller, ok && caller != ""
}

func setCaller(c *gin.Context, caller, method string) {
	logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("caller", caller))
	ctx := context.WithValue(c.Request.Context(), callerKey, caller)
	c.Request = c.Request.WithContext(WithLogger(ctx, logger))
	c.Set(authMethodKey, method)
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// Requests already authenticated by APITokenAuth pass through.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		// if auth is already done, skip this middleware
		if authMethod, exists := c.Get(authMethodKey); exists {
			logger.Debug("Auth already done", "authMethod", authMethod)
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			} else if errors.Is(err, jwt.ErrTokenInvalidClaims) {
				msg = "Invalid token claims"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		setCaller(c, claims.Subject, "jwt")
		c.Next()
	}
}
