package service

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/guttosm/fulfillment-service/internal/service/cache"
)

// CatalogSnapshot is an immutable per-request view of the catalog: the open
// stores in repository order plus carry and cost lookups for the requested
// products. Built once per planning request; never mutated afterwards, so the
// planner can read it without locks and two identical requests against the
// same data produce identical plans.
type CatalogSnapshot struct {
	openStores []model.Store
	storeByID  map[int64]model.Store
	carriers   map[int64]map[int64]bool
	costs      map[int64]map[int64]float64
}

// OpenStores returns the open stores in repository order. Callers must not
// mutate the returned slice.
func (s *CatalogSnapshot) OpenStores() []model.Store {
	return s.openStores
}

// Store returns an open store by id.
func (s *CatalogSnapshot) Store(id int64) (model.Store, bool) {
	store, ok := s.storeByID[id]
	return store, ok
}

// Carries reports whether an open store carries a product.
func (s *CatalogSnapshot) Carries(storeID, productID int64) bool {
	return s.carriers[productID][storeID]
}

// WholesalePrice returns the wholesale price of a product at a store.
// A missing cost row yields 0; absence of a price never blocks planning.
func (s *CatalogSnapshot) WholesalePrice(storeID, productID int64) float64 {
	return s.costs[productID][storeID]
}

// CheapestStoreForProduct returns the open store with the lowest wholesale
// price for a product, or nil when no open store carries it. Strict-less
// comparison keeps the first store in repository order on price ties.
func (s *CatalogSnapshot) CheapestStoreForProduct(productID int64) *model.StoreWithCost {
	var best *model.StoreWithCost
	for _, store := range s.openStores {
		if !s.carriers[productID][store.ID] {
			continue
		}
		price := s.costs[productID][store.ID]
		if best == nil || price < best.WholesalePrice {
			best = &model.StoreWithCost{
				StoreID:        store.ID,
				StoreName:      store.Name,
				WholesalePrice: price,
			}
		}
	}
	return best
}

// StoresCarryingAllProducts returns the open stores that carry every one of
// the given products, in repository order.
func (s *CatalogSnapshot) StoresCarryingAllProducts(productIDs []int64) []model.Store {
	var result []model.Store
	for _, store := range s.openStores {
		carriesAll := true
		for _, pid := range productIDs {
			if !s.carriers[pid][store.ID] {
				carriesAll = false
				break
			}
		}
		if carriesAll {
			result = append(result, store)
		}
	}
	return result
}

// Catalog defines catalog lookups for the planning engine.
type Catalog interface {
	// Snapshot builds a per-request catalog view for the given products.
	Snapshot(ctx context.Context, productIDs []int64) (*CatalogSnapshot, error)

	// OpenStores returns the stores currently open.
	OpenStores(ctx context.Context) ([]model.Store, error)

	// InvalidateStoreCache drops the cached store roster.
	InvalidateStoreCache()
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// CatalogService implements Catalog over the catalog repository. It issues
// exactly three batched queries per snapshot, with stores and carry links
// fetched concurrently.
type CatalogService struct {
	repo       repository.CatalogRepositoryInterface
	clock      Clock
	storeCache cache.StoreCache
}

// NewCatalogService creates a CatalogService with the given options.
// Without options it uses the system clock in DefaultTimezone and no cache.
func NewCatalogService(repo repository.CatalogRepositoryInterface, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{repo: repo}

	for _, opt := range opts {
		opt(s)
	}

	if s.clock == nil {
		clock, err := NewZoneClock(DefaultTimezone)
		if err != nil {
			// DefaultTimezone is a known IANA name; LoadLocation only fails
			// here on a broken tzdata install, where UTC is the sane floor.
			clock = &FixedClock{Time: time.Now().UTC()}
		}
		s.clock = clock
	}

	return s
}

// WithClock injects the clock used for availability checks.
func WithClock(clock Clock) CatalogOption {
	return func(s *CatalogService) {
		s.clock = clock
	}
}

// WithStoreCache enables store roster caching.
func WithStoreCache(c cache.StoreCache) CatalogOption {
	return func(s *CatalogService) {
		s.storeCache = c
	}
}

// Snapshot builds the catalog view for one planning request. Stores and carry
// links are fetched in parallel; costs are fetched afterwards, restricted to
// the stores that are open right now.
func (s *CatalogService) Snapshot(ctx context.Context, productIDs []int64) (*CatalogSnapshot, error) {
	var (
		stores    []model.Store
		links     []model.ProductStoreLink
		storesErr error
		linksErr  error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		stores, storesErr = s.fetchStores(ctx)
	}()
	go func() {
		defer wg.Done()
		links, linksErr = s.repo.FetchProductStoreLinks(ctx, productIDs)
	}()
	wg.Wait()

	if storesErr != nil {
		return nil, storesErr
	}
	if linksErr != nil {
		return nil, linksErr
	}

	now := s.clock.Now()
	snapshot := &CatalogSnapshot{
		storeByID: make(map[int64]model.Store),
		carriers:  make(map[int64]map[int64]bool),
		costs:     make(map[int64]map[int64]float64),
	}

	openIDs := make([]int64, 0, len(stores))
	for _, store := range stores {
		if !StoreOpenAt(store, now) {
			continue
		}
		snapshot.openStores = append(snapshot.openStores, store)
		snapshot.storeByID[store.ID] = store
		openIDs = append(openIDs, store.ID)
	}

	for _, link := range links {
		if _, open := snapshot.storeByID[link.StoreID]; !open {
			continue
		}
		if snapshot.carriers[link.ProductID] == nil {
			snapshot.carriers[link.ProductID] = make(map[int64]bool)
		}
		snapshot.carriers[link.ProductID][link.StoreID] = true
	}

	costs, err := s.repo.FetchProductStoreCosts(ctx, productIDs, openIDs)
	if err != nil {
		return nil, err
	}
	for _, cost := range costs {
		if snapshot.costs[cost.ProductID] == nil {
			snapshot.costs[cost.ProductID] = make(map[int64]float64)
		}
		snapshot.costs[cost.ProductID][cost.StoreID] = cost.WholesalePrice
	}

	return snapshot, nil
}

// OpenStores returns the stores open at the current instant, in repository
// order.
func (s *CatalogService) OpenStores(ctx context.Context) ([]model.Store, error) {
	stores, err := s.fetchStores(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	open := make([]model.Store, 0, len(stores))
	for _, store := range stores {
		if StoreOpenAt(store, now) {
			open = append(open, store)
		}
	}
	return open, nil
}

// InvalidateStoreCache drops the cached store roster.
func (s *CatalogService) InvalidateStoreCache() {
	if s.storeCache != nil {
		s.storeCache.Invalidate()
	}
}

// fetchStores returns the store roster, via the cache when one is configured.
func (s *CatalogService) fetchStores(ctx context.Context) ([]model.Store, error) {
	if s.storeCache != nil {
		if stores, ok := s.storeCache.Get(); ok {
			return stores, nil
		}
	}

	stores, err := s.repo.FetchStores(ctx)
	if err != nil {
		return nil, err
	}

	if s.storeCache != nil {
		s.storeCache.Set(stores)
	}
	return stores, nil
}
