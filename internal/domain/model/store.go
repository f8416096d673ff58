// Package model defines the core domain entities for the fulfillment service.
package model

// Store represents a physical supplier location with its operating hours.
// Stores are managed externally; the planning engine only reads them.
//
// @Description Supplier store with operating hours and availability flags
// @Example {"id": 1, "name": "Store A", "opens_at": "08:00", "closes_at": "22:00"}
type Store struct {
	// ID is the store identifier
	ID int64 `bson:"_id" json:"id" example:"1"`
	// Name is the human-readable store name
	Name string `bson:"name" json:"name" example:"Store A"`
	// IsOpenOverride is an administrative kill-switch: an explicit false
	// closes the store regardless of hours. Nil means no override.
	IsOpenOverride *bool `bson:"is_open_override,omitempty" json:"is_open_override,omitempty"`
	// OpensAt is the opening time of day as "HH:MM" or "HH:MM:SS"
	OpensAt string `bson:"opens_at,omitempty" json:"opens_at,omitempty" example:"08:00"`
	// ClosesAt is the closing time of day as "HH:MM" or "HH:MM:SS"
	ClosesAt string `bson:"closes_at,omitempty" json:"closes_at,omitempty" example:"22:00"`
	// Is24x7 marks a store that never closes
	Is24x7 bool `bson:"is_24_7,omitempty" json:"is_24_7,omitempty"`
}

// HasHours reports whether both opening and closing times are set.
func (s Store) HasHours() bool {
	return s.OpensAt != "" && s.ClosesAt != ""
}

// ProductStoreLink records that a store carries a product.
type ProductStoreLink struct {
	ProductID int64 `bson:"product_id" json:"product_id"`
	StoreID   int64 `bson:"store_id" json:"store_id"`
}

// ProductStoreCost is the wholesale price the platform pays a store
// for one unit of a product. Distinct from the customer-facing price.
type ProductStoreCost struct {
	ProductID      int64   `bson:"product_id" json:"product_id"`
	StoreID        int64   `bson:"store_id" json:"store_id"`
	WholesalePrice float64 `bson:"wholesale_price" json:"wholesale_price"`
}
