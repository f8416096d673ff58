// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "github.com/guttosm/fulfillment-service/internal/domain/model"

// PlanOrderRequest represents the JSON request body for the order planning endpoint.
//
// CartItems and CustomerPrices are required. IncludeOptions switches the
// response between a single plan and the ranked multi-option shape.
//
// @Description Request to plan fulfillment of a cart across supplier stores
// @Example {"cart_items": [{"product_id": 1, "quantity": 2}], "customer_prices": {"1": 3.50}}
type PlanOrderRequest struct {
	// CartItems is the list of requested products with quantities.
	CartItems []model.CartItem `json:"cart_items" binding:"required,min=1"`
	// CustomerPrices maps product id to the customer-facing unit price.
	CustomerPrices map[int64]float64 `json:"customer_prices" binding:"required"`
	// IncludeOptions requests ranked plan options instead of a single plan.
	IncludeOptions bool `json:"include_options"`
} // @name PlanOrderRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrEmptyCart is returned when the cart has no items.
	ErrEmptyCart = &ValidationError{
		Field:   "cart_items",
		Message: "must contain at least one item",
	}
	// ErrInvalidProductID is returned when a cart item has no product id.
	ErrInvalidProductID = &ValidationError{
		Field:   "cart_items.product_id",
		Message: "must be a positive integer",
	}
	// ErrInvalidQuantity is returned when a cart item quantity is below 1.
	ErrInvalidQuantity = &ValidationError{
		Field:   "cart_items.quantity",
		Message: "must be a positive integer",
	}
	// ErrMissingPrices is returned when the customer price map is absent.
	ErrMissingPrices = &ValidationError{
		Field:   "customer_prices",
		Message: "must be an object mapping product id to price",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *PlanOrderRequest) Validate() error {
	if len(r.CartItems) == 0 {
		return ErrEmptyCart
	}
	if r.CustomerPrices == nil {
		return ErrMissingPrices
	}
	for _, item := range r.CartItems {
		if item.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
