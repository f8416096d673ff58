package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const planBody = `{"cart_items":[{"product_id":1,"quantity":2}],"customer_prices":{"1":5.00}}`

func idempotencyTestRouter(cfg IdempotencyConfig, planCalls *int) *gin.Engine {
	router := gin.New()
	router.Use(Idempotency(cfg))
	router.POST("/api/plan", func(c *gin.Context) {
		if planCalls != nil {
			*planCalls++
		}
		c.JSON(http.StatusOK, gin.H{"total_customer_price": 10.00})
	})
	router.GET("/api/stores/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"count": 0})
	})
	return router
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		method         string
		path           string
		idempotencyKey string
		body           string
		expectedStatus int
	}{
		{
			name:           "plan without idempotency key passes through",
			method:         http.MethodPost,
			path:           "/api/plan",
			body:           planBody,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "GET is never cached even with a key",
			method:         http.MethodGet,
			path:           "/api/stores/open",
			idempotencyKey: "checkout-42",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "plan with idempotency key succeeds",
			method:         http.MethodPost,
			path:           "/api/plan",
			idempotencyKey: "checkout-42",
			body:           planBody,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := idempotencyTestRouter(DefaultIdempotencyConfig(), nil)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader([]byte(tt.body)))
			if tt.idempotencyKey != "" {
				req.Header.Set(IdempotencyKeyHeader, tt.idempotencyKey)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestIdempotency_ReplaysDuplicatePlanRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	planCalls := 0
	router := idempotencyTestRouter(DefaultIdempotencyConfig(), &planCalls)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader([]byte(planBody)))
		req.Header.Set(IdempotencyKeyHeader, "checkout-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	// A retry with the same key and body must not re-run the planner.
	second := send()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, planCalls)
}

func TestIdempotency_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultIdempotencyConfig()
	cfg.Enabled = false
	cfg.Cache = nil

	planCalls := 0
	router := idempotencyTestRouter(cfg, &planCalls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader([]byte(planBody)))
		req.Header.Set(IdempotencyKeyHeader, "checkout-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2, planCalls, "disabled idempotency must not cache")
}

func TestIdempotencyCache_cleanup(t *testing.T) {
	cache := newIdempotencyCache(100 * time.Millisecond)

	cache.mu.Lock()
	cache.items[1] = &cachedResponse{
		StatusCode: 200,
		Headers:    make(map[string]string),
		Body:       []byte(`{"total_customer_price":10.00}`),
		Timestamp:  time.Now().Add(-2 * time.Hour),
	}
	cache.items[2] = &cachedResponse{
		StatusCode: 200,
		Headers:    make(map[string]string),
		Body:       []byte(`{"total_customer_price":12.50}`),
		Timestamp:  time.Now(),
	}
	cache.mu.Unlock()

	cache.cleanup()

	cache.mu.Lock()
	_, expiredExists := cache.items[1]
	_, freshExists := cache.items[2]
	cache.mu.Unlock()

	assert.False(t, expiredExists, "expired entry should be evicted")
	assert.True(t, freshExists, "fresh entry should survive cleanup")
}
