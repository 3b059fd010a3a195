package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SscSPs/hoa_billing_app/internal/middleware"
)

const testSecret = "test-secret"

func newRouter(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	handlers = append(handlers, func(c *gin.Context) {
		caller, _ := middleware.GetCallerFromCtx(c.Request.Context())
		c.String(http.StatusOK, caller)
	})
	r.GET("/", handlers...)
	return r
}

func signedToken(t *testing.T, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func badToken(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin"}).SignedString([]byte("other"))
	require.NoError(t, err)
	return s
}

func TestGetLoggerFromCtx_Fallback(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, l, middleware.GetLoggerFromCtx(middleware.WithLogger(context.Background(), l)))
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(t, middleware.AuthMiddleware(testSecret))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signedToken(t, "admin", time.Now().Add(-time.Hour)), http.StatusUnauthorized, ""},
		{"no subject", "Bearer " + signedToken(t, "", time.Now().Add(time.Hour)), http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + badToken(t), http.StatusUnauthorized, ""},
		{"valid", "Bearer " + signedToken(t, "admin", time.Now().Add(time.Hour)), http.StatusOK, "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestAPITokenAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("cron-key"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newRouter(t, middleware.APITokenAuth(string(hash)), middleware.AuthMiddleware(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.APITokenHeader, "cron-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "api-token", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.APITokenHeader, "wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("1-M")
	require.NoError(t, err)
	r := newRouter(t, middleware.RateLimit(lim))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	_, err = middleware.NewMemoryLimiter("nonsense")
	assert.Error(t, err)
}
