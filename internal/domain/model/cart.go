package model

// CartItem is a single requested product with its quantity.
// Quantity must be at least 1; validation happens at the DTO layer.
//
// @Description Requested product and quantity
// @Example {"product_id": 42, "quantity": 2}
type CartItem struct {
	// ProductID is the requested product identifier
	ProductID int64 `json:"product_id" example:"42"`
	// Quantity is the number of units requested
	Quantity int `json:"quantity" example:"2" minimum:"1"`
}

// ProductIDs returns the distinct product ids of the cart, preserving
// first-appearance order. Deterministic iteration matters for tie-breaking.
func ProductIDs(items []CartItem) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
