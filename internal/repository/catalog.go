// Package repository provides data access for the store catalog.
package repository

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository provides read access to stores, catalog membership,
// and wholesale costs. All list queries sort by id so iteration order is
// deterministic; the planner's tie-breaking depends on that.
type CatalogRepository struct {
	stores *mongo.Collection
	links  *mongo.Collection
	costs  *mongo.Collection
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{
		stores: db.Stores,
		links:  db.ProductStoreLinks,
		costs:  db.ProductStoreCosts,
	}
}

// FetchStores returns all stores ordered by id.
func (r *CatalogRepository) FetchStores(ctx context.Context) ([]model.Store, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.stores.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var stores []model.Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// FetchStoreByID returns one store, or nil if it does not exist.
func (r *CatalogRepository) FetchStoreByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	err := r.stores.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// FetchStoresByIDs returns the stores matching the given ids, ordered by id.
func (r *CatalogRepository) FetchStoresByIDs(ctx context.Context, ids []int64) ([]model.Store, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.stores.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var stores []model.Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// FetchProductStoreLinks returns catalog membership rows for the given
// products in a single batched query.
func (r *CatalogRepository) FetchProductStoreLinks(ctx context.Context, productIDs []int64) ([]model.ProductStoreLink, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "product_id", Value: 1}, {Key: "store_id", Value: 1}})
	cursor, err := r.links.Find(ctx, bson.M{"product_id": bson.M{"$in": productIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var links []model.ProductStoreLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// FetchProductStoreCosts returns wholesale cost rows for the given products
// at the given stores in a single batched query. Missing rows are not an
// error; the planner treats absent costs as zero.
func (r *CatalogRepository) FetchProductStoreCosts(ctx context.Context, productIDs, storeIDs []int64) ([]model.ProductStoreCost, error) {
	if len(productIDs) == 0 || len(storeIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"product_id": bson.M{"$in": productIDs},
		"store_id":   bson.M{"$in": storeIDs},
	}
	opts := options.Find().SetSort(bson.D{{Key: "product_id", Value: 1}, {Key: "store_id", Value: 1}})
	cursor, err := r.costs.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var costs []model.ProductStoreCost
	if err := cursor.All(ctx, &costs); err != nil {
		return nil, err
	}
	return costs, nil
}
