// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// CatalogRepositoryInterface defines the read operations the planning engine
// needs from the store/catalog data store. The engine depends only on this
// interface, never on a specific storage technology.
type CatalogRepositoryInterface interface {
	FetchStores(ctx context.Context) ([]model.Store, error)
	FetchStoreByID(ctx context.Context, id int64) (*model.Store, error)
	FetchStoresByIDs(ctx context.Context, ids []int64) ([]model.Store, error)
	FetchProductStoreLinks(ctx context.Context, productIDs []int64) ([]model.ProductStoreLink, error)
	FetchProductStoreCosts(ctx context.Context, productIDs, storeIDs []int64) ([]model.ProductStoreCost, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
