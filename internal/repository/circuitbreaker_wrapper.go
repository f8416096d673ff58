// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// CatalogRepositoryWithCircuitBreaker wraps CatalogRepository with circuit
// breaker protection. An open circuit propagates as an error; planning never
// runs on partial catalog data.
type CatalogRepositoryWithCircuitBreaker struct {
	repo           *CatalogRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCatalogRepositoryWithCircuitBreaker(repo *CatalogRepository, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// FetchStores returns all stores with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) FetchStores(ctx context.Context) ([]model.Store, error) {
	var result []model.Store
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FetchStores(ctx)
		return cbErr
	})
	return result, err
}

// FetchStoreByID returns one store with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) FetchStoreByID(ctx context.Context, id int64) (*model.Store, error) {
	var result *model.Store
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FetchStoreByID(ctx, id)
		return cbErr
	})
	return result, err
}

// FetchStoresByIDs returns matching stores with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) FetchStoresByIDs(ctx context.Context, ids []int64) ([]model.Store, error) {
	var result []model.Store
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FetchStoresByIDs(ctx, ids)
		return cbErr
	})
	return result, err
}

// FetchProductStoreLinks returns catalog membership with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) FetchProductStoreLinks(ctx context.Context, productIDs []int64) ([]model.ProductStoreLink, error) {
	var result []model.ProductStoreLink
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FetchProductStoreLinks(ctx, productIDs)
		return cbErr
	})
	return result, err
}

// FetchProductStoreCosts returns wholesale costs with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) FetchProductStoreCosts(ctx context.Context, productIDs, storeIDs []int64) ([]model.ProductStoreCost, error) {
	var result []model.ProductStoreCost
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FetchProductStoreCosts(ctx, productIDs, storeIDs)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If the circuit is open, the write is dropped; audit logging is non-critical.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If the circuit is open, the writes are dropped; audit logging is non-critical.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns matching log entry counts with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
