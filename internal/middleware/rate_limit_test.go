package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewShardedRateLimiter(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{name: "zero shard count falls back to default", numShards: 0, wantShards: defaultNumShards},
		{name: "negative shard count falls back to default", numShards: -1, wantShards: defaultNumShards},
		{name: "explicit shard count is kept", numShards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()

			assert.NotNil(t, rl)
			assert.Equal(t, tt.wantShards, rl.numShards)
			assert.Equal(t, 10, rl.rate)
			assert.Equal(t, time.Minute, rl.window)
			assert.Len(t, rl.shards, tt.wantShards)
		})
	}
}

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)
	defer rl.Stop()

	assert.NotNil(t, rl)
	assert.Equal(t, defaultNumShards, rl.numShards)
}

func TestShardedRateLimiter_CheckRateLimit(t *testing.T) {
	tests := []struct {
		name        string
		rate        int
		requests    int
		wantAllowed int
	}{
		{name: "bursts below the quota pass", rate: 5, requests: 3, wantAllowed: 3},
		{name: "exactly the quota passes", rate: 5, requests: 5, wantAllowed: 5},
		{name: "overflow is rejected", rate: 5, requests: 8, wantAllowed: 5},
		{name: "quota of one rejects the rest", rate: 1, requests: 3, wantAllowed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(tt.rate, time.Minute, 4)
			defer rl.Stop()

			allowed := 0
			rejected := 0
			for i := 0; i < tt.requests; i++ {
				if ok, _ := rl.checkRateLimit("storefront-client"); ok {
					allowed++
				} else {
					rejected++
				}
			}

			assert.Equal(t, tt.wantAllowed, allowed)
			assert.Equal(t, tt.requests-tt.wantAllowed, rejected)
		})
	}
}

func TestShardedRateLimiter_RemainingTokens(t *testing.T) {
	rl := NewShardedRateLimiter(5, time.Minute, 4)
	defer rl.Stop()

	want := []int{4, 3, 2, 1, 0, 0}
	for i, wantRemaining := range want {
		_, remaining := rl.checkRateLimit("storefront-client")
		assert.Equal(t, wantRemaining, remaining, "request %d", i+1)
	}
}

func TestShardedRateLimiter_QuotaIsPerClient(t *testing.T) {
	rl := NewShardedRateLimiter(3, time.Minute, 4)
	defer rl.Stop()

	// Three storefronts planning orders concurrently each get a full quota.
	clients := []string{"web-checkout", "mobile-app", "partner-api"}

	for _, client := range clients {
		for i := 0; i < 3; i++ {
			allowed, _ := rl.checkRateLimit(client)
			assert.True(t, allowed, "request %d for %s should pass", i+1, client)
		}
		allowed, _ := rl.checkRateLimit(client)
		assert.False(t, allowed, "request over quota for %s should be rejected", client)
	}
}

func TestShardedRateLimiter_RateLimit_Middleware(t *testing.T) {
	tests := []struct {
		name         string
		rate         int
		requests     int
		wantOKCount  int
		want429Count int
	}{
		{name: "plan requests under quota all succeed", rate: 5, requests: 3, wantOKCount: 3, want429Count: 0},
		{name: "plan requests over quota get 429", rate: 3, requests: 5, wantOKCount: 3, want429Count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(tt.rate, time.Minute, 4)
			defer rl.Stop()

			router := gin.New()
			router.Use(rl.RateLimit())
			router.POST("/api/plan", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			body := `{"cart_items":[{"product_id":1,"quantity":2}],"customer_prices":{"1":5.00}}`
			okCount := 0
			blockedCount := 0
			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
				req.RemoteAddr = "192.168.1.1:12345"
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					okCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			assert.Equal(t, tt.wantOKCount, okCount)
			assert.Equal(t, tt.want429Count, blockedCount)
		})
	}
}

func TestShardedRateLimiter_Stats(t *testing.T) {
	rl := NewShardedRateLimiter(10, time.Minute, 4)
	defer rl.Stop()

	for _, client := range []string{"web-checkout", "mobile-app", "partner-api", "ops-console", "batch-planner"} {
		rl.checkRateLimit(client)
	}

	total, perShard := rl.Stats()
	assert.Equal(t, 5, total)
	assert.Len(t, perShard, 4)

	sum := 0
	for _, count := range perShard {
		sum += count
	}
	assert.Equal(t, total, sum)
}

func TestShardedRateLimiter_WindowReset(t *testing.T) {
	rl := NewShardedRateLimiter(2, 50*time.Millisecond, 4)
	defer rl.Stop()

	rl.checkRateLimit("web-checkout")
	rl.checkRateLimit("web-checkout")
	allowed, _ := rl.checkRateLimit("web-checkout")
	assert.False(t, allowed)

	time.Sleep(60 * time.Millisecond)

	allowed, remaining := rl.checkRateLimit("web-checkout")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}
