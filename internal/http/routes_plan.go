package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// PlanRoutes handles planning-related route registration.
type PlanRoutes struct {
	handler *Handler
}

// NewPlanRoutes creates a new PlanRoutes instance.
func NewPlanRoutes(planner service.Planner, catalog service.Catalog) *PlanRoutes {
	return &PlanRoutes{
		handler: NewHandler(planner, catalog),
	}
}

// RegisterPublicRoutes registers the planning routes.
func (r *PlanRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/plan", r.handler.PlanOrder)
	rg.GET("/stores/open", r.handler.OpenStores)
}

// GetHandler returns the underlying planning handler.
func (r *PlanRoutes) GetHandler() *Handler {
	return r.handler
}
