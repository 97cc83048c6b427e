package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinLogger_RequestID(t *testing.T) {
	router := gin.New()
	router.Use(GinLogger(NewNop(), MiddlewareOptions{SkipPaths: []string{"/skip"}}))

	var seen string
	handler := func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
	router.GET("/ping", handler)
	router.GET("/skip", handler)

	t.Run("generates an ID when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.Equal(t, w.Header().Get(RequestIDHeader), seen)
	})

	t.Run("propagates a caller supplied ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/skip", nil)
		req.Header.Set(RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc", seen)
	})
}

func TestGinRecovery(t *testing.T) {
	router := gin.New()
	router.Use(GinLogger(NewNop(), MiddlewareOptions{}), GinRecovery(NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestShouldSkip(t *testing.T) {
	exact := map[string]struct{}{"/": {}}
	assert.True(t, shouldSkip("/", exact, nil))
	assert.True(t, shouldSkip("/static/app.js", exact, []string{"/static/"}))
	assert.False(t, shouldSkip("/api/search/", exact, []string{"/static/"}))
}
