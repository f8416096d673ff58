//go:build integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, uri, dbName string) {
	t.Helper()
	ctx := context.Background()

	db, err := repository.NewMongoDB(uri, dbName)
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	stores := []interface{}{
		model.Store{ID: 1, Name: "Store A", Is24x7: true},
		model.Store{ID: 2, Name: "Store B", Is24x7: true},
	}
	_, err = db.Stores.InsertMany(ctx, stores)
	require.NoError(t, err)

	links := []interface{}{
		model.ProductStoreLink{ProductID: 1, StoreID: 1},
		model.ProductStoreLink{ProductID: 2, StoreID: 1},
		model.ProductStoreLink{ProductID: 2, StoreID: 2},
	}
	_, err = db.ProductStoreLinks.InsertMany(ctx, links)
	require.NoError(t, err)

	costs := []interface{}{
		model.ProductStoreCost{ProductID: 1, StoreID: 1, WholesalePrice: 4.00},
		model.ProductStoreCost{ProductID: 2, StoreID: 1, WholesalePrice: 2.50},
		model.ProductStoreCost{ProductID: 2, StoreID: 2, WholesalePrice: 2.45},
	}
	_, err = db.ProductStoreCosts.InsertMany(ctx, costs)
	require.NoError(t, err)
}

func TestInitializeApp_Integration(t *testing.T) {
	dbName := sanitizeDBNameForApp(t.Name())
	seedCatalog(t, getSharedContainerURI(), dbName)

	cfg := config.Config{
		Server: config.ServerConfig{
			Port:       "8080",
			RateLimit:  100,
			RateWindow: time.Minute,
		},
		Planner: config.PlannerConfig{
			Timezone:      "America/Sao_Paulo",
			StoreCacheTTL: time.Second,
		},
		Database: config.DatabaseConfig{
			Enabled:                        true,
			URI:                            getSharedContainerURI(),
			DatabaseName:                   dbName,
			LogsTTL:                        24 * time.Hour,
			LogsEnabled:                    true,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
	}

	router := InitializeApp(cfg)
	require.NotNil(t, router)

	t.Run("health endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("open stores endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/stores/open", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		stores, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, stores, 2)
	})

	t.Run("plan endpoint builds a plan", func(t *testing.T) {
		body := `{"cart_items":[{"product_id":1,"quantity":2},{"product_id":2,"quantity":1}],"customer_prices":{"1":6.00,"2":4.00}}`
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		plan, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)

		// Store A carries the whole cart, so the cover collapses to one route.
		routes, ok := plan["store_route_plan"].([]interface{})
		require.True(t, ok)
		assert.Len(t, routes, 1)
		assert.InDelta(t, 10.50, plan["total_wholesale_cost"], 0.001)
		assert.InDelta(t, 16.00, plan["total_customer_price"], 0.001)
		assert.InDelta(t, 5.50, plan["total_margin"], 0.001)
	})

	t.Run("plan endpoint returns ranked options", func(t *testing.T) {
		body := `{"cart_items":[{"product_id":1,"quantity":2},{"product_id":2,"quantity":1}],"customer_prices":{"1":6.00,"2":4.00},"include_options":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		result, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)

		options, ok := result["options"].([]interface{})
		require.True(t, ok)
		require.Len(t, options, 2)

		// Splitting product 2 to Store B saves 0.05 over the single store.
		assert.Equal(t, "max_profit", result["max_profit_option_id"])
		assert.InDelta(t, 5.55, result["max_profit"], 0.001)
	})

	t.Run("plan endpoint rejects invalid cart", func(t *testing.T) {
		body := `{"cart_items":[],"customer_prices":{}}`
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
