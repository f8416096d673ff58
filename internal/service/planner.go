package service

import (
	"context"
	"fmt"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/logger"
	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/rs/zerolog"
)

// Recommendation texts attached to plan options.
const (
	recommendationSingleStore = "All items from one store keeps the delivery simple and fast."
	recommendationMaxProfit   = "Splitting the order across stores maximizes the profit margin."
	recommendationBothBest    = "All items from one store keeps the delivery simple and fast, and it is also the most profitable plan."
)

// Planner builds fulfillment plans for carts.
type Planner interface {
	// Plan builds the minimum-store cover plan for a cart.
	Plan(ctx context.Context, items []model.CartItem, customerPrices map[int64]float64) (model.OrderPlan, error)

	// PlanWithOptions builds ranked fulfillment alternatives for a cart.
	PlanWithOptions(ctx context.Context, items []model.CartItem, customerPrices map[int64]float64) (model.OrderPlanWithOptions, error)
}

// PlannerService implements Planner on top of per-request catalog snapshots.
// It holds no mutable state of its own, so one instance serves all requests.
type PlannerService struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(catalog Catalog) *PlannerService {
	return &PlannerService{
		catalog: catalog,
		logger:  logger.WithComponent("planner"),
	}
}

// cartLine is a cart item with duplicate product rows merged. Order follows
// first appearance in the cart, which fixes tie-breaking.
type cartLine struct {
	productID int64
	quantity  int
}

// aggregateCart merges duplicate product rows, summing quantities and
// preserving first-appearance order.
func aggregateCart(items []model.CartItem) []cartLine {
	index := make(map[int64]int, len(items))
	lines := make([]cartLine, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			lines[i].quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(lines)
		lines = append(lines, cartLine{productID: item.ProductID, quantity: item.Quantity})
	}
	return lines
}

// Plan builds the minimum-store cover plan for a cart.
func (s *PlannerService) Plan(ctx context.Context, items []model.CartItem, customerPrices map[int64]float64) (model.OrderPlan, error) {
	productIDs := model.ProductIDs(items)

	snapshot, err := s.catalog.Snapshot(ctx, productIDs)
	if err != nil {
		return model.OrderPlan{}, fmt.Errorf("building catalog snapshot: %w", err)
	}

	if len(snapshot.OpenStores()) == 0 {
		plan := model.EmptyPlan(items)
		metrics.RecordCoverIterations(0)
		metrics.RecordUncoveredProducts(len(plan.UncoveredProductIDs))
		s.logger.Debug().
			Int("products", len(productIDs)).
			Msg("No open stores, returning empty plan")
		return plan, nil
	}

	lines := aggregateCart(items)
	routes, uncovered, iterations := coverCart(snapshot, lines)
	plan := assemblePlan(snapshot, routes, uncovered, productIDs, customerPrices)

	metrics.RecordCoverIterations(iterations)
	metrics.RecordUncoveredProducts(len(uncovered))
	s.logger.Debug().
		Int("products", len(productIDs)).
		Int("routes", len(plan.StoreRoutePlan)).
		Int("uncovered", len(uncovered)).
		Int("cover_iterations", iterations).
		Msg("Built cover plan")

	return plan, nil
}

// PlanWithOptions builds ranked fulfillment alternatives: a single convenient
// store when one carries the whole cart, and a maximum-profit split across
// the per-item cheapest stores. Near-identical alternatives collapse into one
// option.
func (s *PlannerService) PlanWithOptions(ctx context.Context, items []model.CartItem, customerPrices map[int64]float64) (model.OrderPlanWithOptions, error) {
	productIDs := model.ProductIDs(items)

	snapshot, err := s.catalog.Snapshot(ctx, productIDs)
	if err != nil {
		return model.OrderPlanWithOptions{}, fmt.Errorf("building catalog snapshot: %w", err)
	}

	lines := aggregateCart(items)

	var options []model.OrderPlanOption

	if single, ok := singleStorePlan(snapshot, lines, productIDs, customerPrices); ok {
		options = append(options, model.OrderPlanOption{
			ID:             model.OptionSingleStore,
			Plan:           single,
			StoreCount:     1,
			Recommendation: recommendationSingleStore,
			IsRecommended:  true,
		})
	}

	if split, ok := maxProfitPlan(snapshot, lines, productIDs, customerPrices); ok {
		options = append(options, model.OrderPlanOption{
			ID:             model.OptionMaxProfit,
			Plan:           split,
			StoreCount:     len(split.StoreRoutePlan),
			Recommendation: recommendationMaxProfit,
		})
	}

	options = dedupOptions(options)

	result := model.OrderPlanWithOptions{Options: options}
	if len(options) > 0 {
		baseline := options[0].Plan.TotalMargin
		result.BaselineProfit = baseline
		result.MaxProfit = baseline
		result.MaxProfitOptionID = options[0].ID

		for i := range options {
			options[i].ProfitDifference = model.RoundCurrency(options[i].Plan.TotalMargin - baseline)
			if options[i].Plan.TotalMargin > result.MaxProfit {
				result.MaxProfit = options[i].Plan.TotalMargin
				result.MaxProfitOptionID = options[i].ID
			}
		}
	}

	metrics.RecordPlanOptions(len(options))
	s.logger.Debug().
		Int("products", len(productIDs)).
		Int("options", len(options)).
		Str("max_profit_option", result.MaxProfitOptionID).
		Msg("Built plan options")

	return result, nil
}

// coverCart assigns cart lines to open stores using as few stores as the
// heuristic finds. A single store carrying the whole coverable cart wins
// outright, priced by whole-cart cost; otherwise a greedy loop repeatedly
// picks the store covering the most remaining products. Products no open
// store carries are returned as uncovered.
func coverCart(snapshot *CatalogSnapshot, lines []cartLine) (routes []model.StoreRoute, uncovered []int64, iterations int) {
	var coverable []cartLine
	for _, line := range lines {
		if snapshot.CheapestStoreForProduct(line.productID) == nil {
			uncovered = append(uncovered, line.productID)
			continue
		}
		coverable = append(coverable, line)
	}
	if len(coverable) == 0 {
		return nil, uncovered, 0
	}

	coverableIDs := make([]int64, len(coverable))
	for i, line := range coverable {
		coverableIDs[i] = line.productID
	}

	if full := snapshot.StoresCarryingAllProducts(coverableIDs); len(full) > 0 {
		best := full[0]
		bestRoute := buildRoute(snapshot, best, coverable)
		for _, candidate := range full[1:] {
			route := buildRoute(snapshot, candidate, coverable)
			if route.TotalWholesaleCost < bestRoute.TotalWholesaleCost {
				best = candidate
				bestRoute = route
			}
		}
		return []model.StoreRoute{bestRoute}, uncovered, 1
	}

	remaining := coverable
	for len(remaining) > 0 {
		iterations++

		var bestStore model.Store
		bestCount := 0
		for _, store := range snapshot.OpenStores() {
			count := 0
			for _, line := range remaining {
				if snapshot.Carries(store.ID, line.productID) {
					count++
				}
			}
			if count > bestCount {
				bestStore = store
				bestCount = count
			}
		}
		if bestCount == 0 {
			// Unreachable while every remaining product has an open carrier,
			// but a guard beats an infinite loop.
			for _, line := range remaining {
				uncovered = append(uncovered, line.productID)
			}
			break
		}

		var assigned, rest []cartLine
		for _, line := range remaining {
			if snapshot.Carries(bestStore.ID, line.productID) {
				assigned = append(assigned, line)
			} else {
				rest = append(rest, line)
			}
		}
		routes = append(routes, buildRoute(snapshot, bestStore, assigned))
		remaining = rest
	}

	return routes, uncovered, iterations
}

// buildRoute prices the given cart lines at one store. Missing cost rows
// price at zero. The route total is the cent-rounded sum over its items.
func buildRoute(snapshot *CatalogSnapshot, store model.Store, lines []cartLine) model.StoreRoute {
	route := model.StoreRoute{
		StoreID:   store.ID,
		StoreName: store.Name,
		Items:     make([]model.StoreRouteItem, 0, len(lines)),
	}

	total := 0.0
	for _, line := range lines {
		price := snapshot.WholesalePrice(store.ID, line.productID)
		route.Items = append(route.Items, model.StoreRouteItem{
			ProductID:      line.productID,
			Quantity:       line.quantity,
			WholesalePrice: price,
		})
		total += price * float64(line.quantity)
	}
	route.TotalWholesaleCost = model.RoundCurrency(total)

	return route
}

// singleStorePlan builds a plan fulfilling the whole cart from the cheapest
// store that carries every product. Returns false when no store does.
func singleStorePlan(snapshot *CatalogSnapshot, lines []cartLine, productIDs []int64, customerPrices map[int64]float64) (model.OrderPlan, bool) {
	candidates := snapshot.StoresCarryingAllProducts(productIDs)
	if len(candidates) == 0 {
		return model.OrderPlan{}, false
	}

	best := candidates[0]
	bestRoute := buildRoute(snapshot, best, lines)
	for _, candidate := range candidates[1:] {
		route := buildRoute(snapshot, candidate, lines)
		if route.TotalWholesaleCost < bestRoute.TotalWholesaleCost {
			best = candidate
			bestRoute = route
		}
	}

	return assemblePlan(snapshot, []model.StoreRoute{bestRoute}, nil, productIDs, customerPrices), true
}

// maxProfitPlan routes every product to its individually cheapest open
// store, then groups the assignments into per-store routes. Returns false
// when no product has an open carrier.
func maxProfitPlan(snapshot *CatalogSnapshot, lines []cartLine, productIDs []int64, customerPrices map[int64]float64) (model.OrderPlan, bool) {
	byStore := make(map[int64][]cartLine)
	var storeOrder []int64
	var uncovered []int64

	for _, line := range lines {
		cheapest := snapshot.CheapestStoreForProduct(line.productID)
		if cheapest == nil {
			uncovered = append(uncovered, line.productID)
			continue
		}
		if _, seen := byStore[cheapest.StoreID]; !seen {
			storeOrder = append(storeOrder, cheapest.StoreID)
		}
		byStore[cheapest.StoreID] = append(byStore[cheapest.StoreID], line)
	}

	if len(storeOrder) == 0 {
		return model.OrderPlan{}, false
	}

	routes := make([]model.StoreRoute, 0, len(storeOrder))
	for _, storeID := range storeOrder {
		store, _ := snapshot.Store(storeID)
		routes = append(routes, buildRoute(snapshot, store, byStore[storeID]))
	}

	return assemblePlan(snapshot, routes, uncovered, productIDs, customerPrices), true
}

// assemblePlan computes plan totals and the informational per-item cheapest
// map. The customer total counts only covered products, so the margin always
// equals customer total minus wholesale total for what the plan actually
// fulfills.
func assemblePlan(snapshot *CatalogSnapshot, routes []model.StoreRoute, uncovered, productIDs []int64, customerPrices map[int64]float64) model.OrderPlan {
	plan := model.OrderPlan{
		CheapestStorePerItem: make(map[int64]model.StoreWithCost, len(productIDs)),
		StoreRoutePlan:       routes,
		UncoveredProductIDs:  uncovered,
	}
	if plan.StoreRoutePlan == nil {
		plan.StoreRoutePlan = []model.StoreRoute{}
	}
	if plan.UncoveredProductIDs == nil {
		plan.UncoveredProductIDs = []int64{}
	}

	for _, pid := range productIDs {
		if cheapest := snapshot.CheapestStoreForProduct(pid); cheapest != nil {
			plan.CheapestStorePerItem[pid] = *cheapest
		}
	}

	wholesale := 0.0
	customer := 0.0
	for _, route := range routes {
		wholesale += route.TotalWholesaleCost
		for _, item := range route.Items {
			customer += customerPrices[item.ProductID] * float64(item.Quantity)
		}
	}
	plan.TotalWholesaleCost = model.RoundCurrency(wholesale)
	plan.TotalCustomerPrice = model.RoundCurrency(customer)
	plan.TotalMargin = model.RoundCurrency(customer - wholesale)

	return plan
}

// dedupOptions collapses alternatives that use the same store set at the
// same cost within the currency epsilon. The surviving option notes that it
// is also the maximum-profit outcome.
func dedupOptions(options []model.OrderPlanOption) []model.OrderPlanOption {
	if len(options) < 2 {
		return options
	}

	a, b := options[0], options[1]
	if a.StoreCount == b.StoreCount &&
		a.Plan.SameStoreSet(b.Plan) &&
		model.CurrencyEqual(a.Plan.TotalWholesaleCost, b.Plan.TotalWholesaleCost) {
		a.Recommendation = recommendationBothBest
		return []model.OrderPlanOption{a}
	}
	return options
}
