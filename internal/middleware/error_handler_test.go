package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.POST("/api/plan", func(c *gin.Context) {
		_ = c.Error(errors.New("catalog snapshot failed"))
	})
	router.GET("/api/stores/open", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("context errors become a 500 payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal_error")
		assert.Contains(t, w.Body.String(), "An unexpected error occurred")
	})

	t.Run("clean requests are untouched", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/stores/open", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}
