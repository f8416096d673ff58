package model

import "math"

// CurrencyEpsilon is the tolerance used when comparing currency amounts.
const CurrencyEpsilon = 0.01

// RoundCurrency rounds a currency amount to two decimal places.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// CurrencyEqual reports whether two currency amounts are equal within
// CurrencyEpsilon.
func CurrencyEqual(a, b float64) bool {
	return math.Abs(a-b) < CurrencyEpsilon
}

// StoreRouteItem is one cart line attributed to a store, priced at that
// store's wholesale cost.
type StoreRouteItem struct {
	ProductID      int64   `json:"product_id"`
	Quantity       int     `json:"quantity"`
	WholesalePrice float64 `json:"wholesale_price"`
}

// StoreRoute is the subset of a cart assigned to a single store.
// TotalWholesaleCost is always the cent-rounded sum of price*quantity
// over Items.
//
// @Description Portion of the cart fulfilled by one store
type StoreRoute struct {
	StoreID            int64            `json:"store_id"`
	StoreName          string           `json:"store_name"`
	Items              []StoreRouteItem `json:"items"`
	TotalWholesaleCost float64          `json:"total_wholesale_cost"`
}

// StoreWithCost identifies the store supplying a product and its unit cost.
type StoreWithCost struct {
	StoreID        int64   `json:"store_id"`
	StoreName      string  `json:"store_name"`
	WholesalePrice float64 `json:"wholesale_price"`
}

// OrderPlan is a complete fulfillment plan for a cart.
//
// CheapestStorePerItem is informational: it names the individually cheapest
// open store per product regardless of which stores the route plan uses.
// UncoveredProductIDs lists cart products no open store could supply; those
// products are absent from the route plan.
//
// @Description Complete fulfillment plan with per-store routes and totals
type OrderPlan struct {
	CheapestStorePerItem map[int64]StoreWithCost `json:"cheapest_store_per_item"`
	StoreRoutePlan       []StoreRoute            `json:"store_route_plan"`
	TotalWholesaleCost   float64                 `json:"total_wholesale_cost"`
	TotalCustomerPrice   float64                 `json:"total_customer_price"`
	TotalMargin          float64                 `json:"total_margin"`
	UncoveredProductIDs  []int64                 `json:"uncovered_product_ids"`
}

// StoreIDs returns the ordered store ids of the route plan.
func (p OrderPlan) StoreIDs() []int64 {
	ids := make([]int64, 0, len(p.StoreRoutePlan))
	for _, route := range p.StoreRoutePlan {
		ids = append(ids, route.StoreID)
	}
	return ids
}

// SameStoreSet reports whether two plans use exactly the same set of stores.
func (p OrderPlan) SameStoreSet(other OrderPlan) bool {
	if len(p.StoreRoutePlan) != len(other.StoreRoutePlan) {
		return false
	}
	set := make(map[int64]bool, len(p.StoreRoutePlan))
	for _, route := range p.StoreRoutePlan {
		set[route.StoreID] = true
	}
	for _, route := range other.StoreRoutePlan {
		if !set[route.StoreID] {
			return false
		}
	}
	return true
}

// Option identifiers for OrderPlanOption.ID.
const (
	OptionSingleStore = "single_store"
	OptionMaxProfit   = "max_profit"
)

// OrderPlanOption is one ranked fulfillment alternative. Request-scoped,
// never persisted.
type OrderPlanOption struct {
	ID               string    `json:"id"`
	Plan             OrderPlan `json:"plan"`
	StoreCount       int       `json:"store_count"`
	Recommendation   string    `json:"recommendation"`
	ProfitDifference float64   `json:"profit_difference"`
	IsRecommended    bool      `json:"is_recommended"`
}

// OrderPlanWithOptions holds all generated plan options plus profit summary.
type OrderPlanWithOptions struct {
	Options           []OrderPlanOption `json:"options"`
	BaselineProfit    float64           `json:"baseline_profit"`
	MaxProfit         float64           `json:"max_profit"`
	MaxProfitOptionID string            `json:"max_profit_option_id,omitempty"`
}

// EmptyPlan returns a plan with no routes where every requested product is
// reported uncovered. Used when no open store can supply anything.
func EmptyPlan(items []CartItem) OrderPlan {
	return OrderPlan{
		CheapestStorePerItem: map[int64]StoreWithCost{},
		StoreRoutePlan:       []StoreRoute{},
		UncoveredProductIDs:  ProductIDs(items),
	}
}
