// Package http provides the HTTP transport layer for the fulfillment service.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// Handler provides HTTP handlers for order planning routes.
type Handler struct {
	planner service.Planner
	catalog service.Catalog
}

// NewHandler creates a new Handler instance.
func NewHandler(planner service.Planner, catalog service.Catalog) *Handler {
	return &Handler{
		planner: planner,
		catalog: catalog,
	}
}

// PlanOrder handles POST /api/plan requests.
//
// @Summary      Plan order fulfillment
// @Description  Builds a fulfillment plan for a cart: which open stores supply which items and at what cost and margin. With include_options set, returns ranked alternatives (single convenient store vs maximum profit via splitting). Supports idempotency via Idempotency-Key header.
// @Tags         Planning
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PlanOrderRequest true "Cart and customer prices"
// @Success      200 {object} dto.SuccessResponse "Fulfillment plan or plan options"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Router       /api/plan [post]
func (h *Handler) PlanOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.PlanOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		metrics.RecordPlanBuild(0, "validation_error")
		switch err {
		case dto.ErrMissingPrices:
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationPrices, err)
		default:
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationCartItems, err)
		}
		return
	}

	// Audit log (async)
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "plan", "Fulfillment plan requested", map[string]interface{}{
				"cart_items":      len(req.CartItems),
				"include_options": req.IncludeOptions,
			})
		}
	}

	start := time.Now()

	if req.IncludeOptions {
		result, err := h.planner.PlanWithOptions(c.Request.Context(), req.CartItems, req.CustomerPrices)
		if err != nil {
			metrics.RecordPlanBuild(time.Since(start), "error")
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyPlanningFailed, err)
			return
		}
		metrics.RecordPlanBuild(time.Since(start), "success")
		builder.SuccessOK(result)
		return
	}

	plan, err := h.planner.Plan(c.Request.Context(), req.CartItems, req.CustomerPrices)
	if err != nil {
		metrics.RecordPlanBuild(time.Since(start), "error")
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyPlanningFailed, err)
		return
	}
	metrics.RecordPlanBuild(time.Since(start), "success")
	builder.SuccessOK(plan)
}

// OpenStores handles GET /api/stores/open requests.
//
// @Summary      List open stores
// @Description  Returns the stores currently open according to their operating hours, 24/7 flags, and administrative overrides.
// @Tags         Stores
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Open stores"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Router       /api/stores/open [get]
func (h *Handler) OpenStores(c *gin.Context) {
	builder := NewResponseBuilder(c)

	stores, err := h.catalog.OpenStores(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyPlanningFailed, err)
		return
	}

	builder.SuccessOK(stores)
}
