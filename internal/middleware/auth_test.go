package middleware

import (
	"github.com/14kear/pollstore/internal/lib/identity"
	"github.com/14kear/pollstore/internal/lib/jwt"
	"github.com/14kear/pollstore/internal/lib/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func newEngine(captured *identity.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger(logger.Discard()))
	r.GET("/me", NewAuthMiddleware(logger.Discard(), testSecret).Middleware(), func(c *gin.Context) {
		*captured = identity.Caller(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := jwt.NewAccessToken(7, "a@b.c", testSecret, time.Hour)
	require.NoError(t, err)
	foreign, err := jwt.NewAccessToken(7, "a@b.c", "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCaller identity.Principal
	}{
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusNoContent, wantCaller: "user:7"},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "foreign secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var caller identity.Principal
			r := newEngine(&caller)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCaller, caller)
		})
	}
}

func TestRequestLogger_ReusesIncomingID(t *testing.T) {
	var caller identity.Principal
	r := newEngine(&caller)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
