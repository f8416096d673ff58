//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalogFixtures(t *testing.T, ctx context.Context, db *MongoDB) {
	t.Helper()

	stores := []interface{}{
		model.Store{ID: 1, Name: "Store A", OpensAt: "08:00", ClosesAt: "22:00"},
		model.Store{ID: 2, Name: "Store B", Is24x7: true},
		model.Store{ID: 3, Name: "Store C", OpensAt: "20:00", ClosesAt: "02:00"},
	}
	_, err := db.Stores.InsertMany(ctx, stores)
	require.NoError(t, err)

	links := []interface{}{
		model.ProductStoreLink{ProductID: 10, StoreID: 1},
		model.ProductStoreLink{ProductID: 10, StoreID: 2},
		model.ProductStoreLink{ProductID: 20, StoreID: 2},
		model.ProductStoreLink{ProductID: 30, StoreID: 3},
	}
	_, err = db.ProductStoreLinks.InsertMany(ctx, links)
	require.NoError(t, err)

	costs := []interface{}{
		model.ProductStoreCost{ProductID: 10, StoreID: 1, WholesalePrice: 4.00},
		model.ProductStoreCost{ProductID: 10, StoreID: 2, WholesalePrice: 3.80},
		model.ProductStoreCost{ProductID: 20, StoreID: 2, WholesalePrice: 2.50},
		model.ProductStoreCost{ProductID: 30, StoreID: 3, WholesalePrice: 9.99},
	}
	_, err = db.ProductStoreCosts.InsertMany(ctx, costs)
	require.NoError(t, err)
}

func TestCatalogRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	seedCatalogFixtures(t, ctx, db)
	repo := NewCatalogRepository(db)

	t.Run("fetch stores ordered by id", func(t *testing.T) {
		stores, err := repo.FetchStores(ctx)
		require.NoError(t, err)
		require.Len(t, stores, 3)
		assert.Equal(t, int64(1), stores[0].ID)
		assert.Equal(t, int64(2), stores[1].ID)
		assert.Equal(t, int64(3), stores[2].ID)
		assert.Equal(t, "Store A", stores[0].Name)
		assert.True(t, stores[1].Is24x7)
		assert.Equal(t, "20:00", stores[2].OpensAt)
	})

	t.Run("fetch store by id", func(t *testing.T) {
		store, err := repo.FetchStoreByID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.Equal(t, "Store B", store.Name)
	})

	t.Run("fetch store by id returns nil for unknown store", func(t *testing.T) {
		store, err := repo.FetchStoreByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("fetch stores by ids", func(t *testing.T) {
		stores, err := repo.FetchStoresByIDs(ctx, []int64{3, 1})
		require.NoError(t, err)
		require.Len(t, stores, 2)
		assert.Equal(t, int64(1), stores[0].ID)
		assert.Equal(t, int64(3), stores[1].ID)
	})

	t.Run("fetch stores by empty ids", func(t *testing.T) {
		stores, err := repo.FetchStoresByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, stores)
	})

	t.Run("fetch product store links batched", func(t *testing.T) {
		links, err := repo.FetchProductStoreLinks(ctx, []int64{10, 20})
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, int64(10), links[0].ProductID)
		assert.Equal(t, int64(1), links[0].StoreID)
	})

	t.Run("fetch costs restricted to given stores", func(t *testing.T) {
		costs, err := repo.FetchProductStoreCosts(ctx, []int64{10, 20}, []int64{2})
		require.NoError(t, err)
		require.Len(t, costs, 2)
		for _, cost := range costs {
			assert.Equal(t, int64(2), cost.StoreID)
		}
	})

	t.Run("fetch costs with empty inputs", func(t *testing.T) {
		costs, err := repo.FetchProductStoreCosts(ctx, nil, []int64{1})
		require.NoError(t, err)
		assert.Empty(t, costs)

		costs, err = repo.FetchProductStoreCosts(ctx, []int64{10}, nil)
		require.NoError(t, err)
		assert.Empty(t, costs)
	})
}

func TestCatalogRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	seedCatalogFixtures(t, ctx, db)

	repo := NewCatalogRepository(db)
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrappedRepo := NewCatalogRepositoryWithCircuitBreaker(repo, cb)

	t.Run("circuit breaker allows successful reads", func(t *testing.T) {
		stores, err := wrappedRepo.FetchStores(ctx)
		require.NoError(t, err)
		assert.Len(t, stores, 3)

		links, err := wrappedRepo.FetchProductStoreLinks(ctx, []int64{10})
		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("circuit breaker stays closed", func(t *testing.T) {
		stats := cb.GetStats()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)
	})
}
