package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/mocks"
	"github.com/guttosm/fulfillment-service/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Snapshot(t *testing.T) {
	stores := []model.Store{
		{ID: 1, Name: "Day Store", OpensAt: "08:00", ClosesAt: "22:00"},
		{ID: 2, Name: "Night Store", OpensAt: "20:00", ClosesAt: "02:00"},
		{ID: 3, Name: "Always Open", Is24x7: true},
	}
	links := []model.ProductStoreLink{
		{ProductID: 10, StoreID: 1},
		{ProductID: 10, StoreID: 2},
		{ProductID: 10, StoreID: 3},
	}
	costs := []model.ProductStoreCost{
		{ProductID: 10, StoreID: 2, WholesalePrice: 5.00},
		{ProductID: 10, StoreID: 3, WholesalePrice: 4.00},
	}

	t.Run("filters closed stores and restricts costs to open ones", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		repo.On("FetchStores", mock.Anything).Return(stores, nil)
		repo.On("FetchProductStoreLinks", mock.Anything, []int64{10}).Return(links, nil)
		// At 23:30 the day store is closed; only the night and 24/7 stores
		// should appear in the cost query.
		repo.On("FetchProductStoreCosts", mock.Anything, []int64{10}, []int64{2, 3}).Return(costs, nil)

		svc := NewCatalogService(repo, WithClock(NewFixedClock(at(23, 30))))

		snapshot, err := svc.Snapshot(context.Background(), []int64{10})
		require.NoError(t, err)

		open := snapshot.OpenStores()
		require.Len(t, open, 2)
		assert.Equal(t, int64(2), open[0].ID)
		assert.Equal(t, int64(3), open[1].ID)

		assert.False(t, snapshot.Carries(1, 10))
		assert.True(t, snapshot.Carries(2, 10))

		cheapest := snapshot.CheapestStoreForProduct(10)
		require.NotNil(t, cheapest)
		assert.Equal(t, int64(3), cheapest.StoreID)
		assert.InDelta(t, 4.00, cheapest.WholesalePrice, 0.001)

		repo.AssertExpectations(t)
	})

	t.Run("only 24x7 carrier open in the small hours", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		repo.On("FetchStores", mock.Anything).Return(stores, nil)
		repo.On("FetchProductStoreLinks", mock.Anything, []int64{10}).Return(links, nil)
		repo.On("FetchProductStoreCosts", mock.Anything, []int64{10}, []int64{3}).Return(
			[]model.ProductStoreCost{{ProductID: 10, StoreID: 3, WholesalePrice: 4.00}}, nil)

		svc := NewCatalogService(repo, WithClock(NewFixedClock(at(4, 0))))

		snapshot, err := svc.Snapshot(context.Background(), []int64{10})
		require.NoError(t, err)

		require.Len(t, snapshot.OpenStores(), 1)
		assert.Equal(t, int64(3), snapshot.OpenStores()[0].ID)

		cheapest := snapshot.CheapestStoreForProduct(10)
		require.NotNil(t, cheapest)
		assert.Equal(t, "Always Open", cheapest.StoreName)
	})

	t.Run("stores fetch error propagates", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		repo.On("FetchStores", mock.Anything).Return(nil, errors.New("mongo down"))
		repo.On("FetchProductStoreLinks", mock.Anything, []int64{10}).Return(links, nil)

		svc := NewCatalogService(repo, WithClock(NewFixedClock(at(12, 0))))

		_, err := svc.Snapshot(context.Background(), []int64{10})
		assert.Error(t, err)
	})

	t.Run("links fetch error propagates", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		repo.On("FetchStores", mock.Anything).Return(stores, nil)
		repo.On("FetchProductStoreLinks", mock.Anything, []int64{10}).Return(nil, errors.New("mongo down"))

		svc := NewCatalogService(repo, WithClock(NewFixedClock(at(12, 0))))

		_, err := svc.Snapshot(context.Background(), []int64{10})
		assert.Error(t, err)
	})

	t.Run("costs fetch error propagates", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepositoryInterface)
		repo.On("FetchStores", mock.Anything).Return(stores, nil)
		repo.On("FetchProductStoreLinks", mock.Anything, []int64{10}).Return(links, nil)
		repo.On("FetchProductStoreCosts", mock.Anything, []int64{10}, mock.Anything).Return(nil, errors.New("mongo down"))

		svc := NewCatalogService(repo, WithClock(NewFixedClock(at(12, 0))))

		_, err := svc.Snapshot(context.Background(), []int64{10})
		assert.Error(t, err)
	})
}

func TestCatalogService_OpenStores(t *testing.T) {
	closed := false
	stores := []model.Store{
		{ID: 1, Name: "Open", OpensAt: "08:00", ClosesAt: "22:00"},
		{ID: 2, Name: "Overridden", IsOpenOverride: &closed},
	}

	repo := new(mocks.MockCatalogRepositoryInterface)
	repo.On("FetchStores", mock.Anything).Return(stores, nil)

	svc := NewCatalogService(repo, WithClock(NewFixedClock(at(12, 0))))

	open, err := svc.OpenStores(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, int64(1), open[0].ID)
}

func TestCatalogService_StoreCache(t *testing.T) {
	stores := []model.Store{{ID: 1, Name: "Cached", Is24x7: true}}

	repo := new(mocks.MockCatalogRepositoryInterface)
	repo.On("FetchStores", mock.Anything).Return(stores, nil).Once()

	storeCache := cache.NewStoreCache(time.Minute)
	defer storeCache.Stop()

	svc := NewCatalogService(repo,
		WithClock(NewFixedClock(at(12, 0))),
		WithStoreCache(storeCache),
	)

	// Second call must be served from the cache; the mock allows exactly
	// one FetchStores.
	for i := 0; i < 2; i++ {
		open, err := svc.OpenStores(context.Background())
		require.NoError(t, err)
		require.Len(t, open, 1)
	}
	repo.AssertExpectations(t)

	// After invalidation the roster is fetched again.
	repo.On("FetchStores", mock.Anything).Return(stores, nil).Once()
	svc.InvalidateStoreCache()

	_, err := svc.OpenStores(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
