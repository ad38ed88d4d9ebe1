package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRevocation struct {
	revoked bool
	err     error
}

func (s stubRevocation) IsRevoked(context.Context, string, *services.Claims) (bool, error) {
	return s.revoked, s.err
}

func newIssuer(t *testing.T) *services.TokenIssuer {
	t.Helper()
	issuer, err := services.NewTokenIssuer("test_secret_key", time.Hour, "mindwell")
	require.NoError(t, err)
	return issuer
}

func protectedRouter(issuer *services.TokenIssuer, rc RevocationChecker) *gin.Engine {
	r := gin.New()
	r.Use(RequestTracingMiddleware(), AuthMiddleware(issuer, rc))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "session": c.GetString(ContextSessionID)})
	})
	return r
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Token abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestAuthMiddleware(t *testing.T) {
	issuer := newIssuer(t)
	token, _, err := issuer.Issue("user-1", "session-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		rc     RevocationChecker
		status int
	}{
		{"bearer", "Bearer " + token, nil, http.StatusOK},
		{"token scheme", "Token " + token, stubRevocation{}, http.StatusOK},
		{"missing", "", nil, http.StatusUnauthorized},
		{"garbage", "Bearer nope", nil, http.StatusUnauthorized},
		{"revoked", "Bearer " + token, stubRevocation{revoked: true}, http.StatusUnauthorized},
		{"checker down", "Bearer " + token, stubRevocation{err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			protectedRouter(issuer, tt.rc).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user":"user-1","session":"session-1"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(EnhancedRecoveryMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/api/moods/entries/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/moods/entries/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestSizeLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimiter(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	req.ContentLength = 100
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetricsAndHeaders(t *testing.T) {
	r := gin.New()
	r.Use(MetricsMiddleware(), SecurityHeaders(), NoStore())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
