// Package app provides service initialization.
package app

import (
	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/guttosm/fulfillment-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds planning service components.
type ServiceComponents struct {
	Catalog service.Catalog
	Planner service.Planner
}

// InitializeServices initializes the catalog and planner services. Returns nil
// when no catalog repository is available; planning endpoints are then not
// registered.
func InitializeServices(cfg config.PlannerConfig, dbComponents *DatabaseComponents) *ServiceComponents {
	if dbComponents == nil || dbComponents.CatalogRepo == nil {
		return nil
	}

	var opts []service.CatalogOption

	clock, err := service.NewZoneClock(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("Invalid planner timezone, using default")
	} else {
		opts = append(opts, service.WithClock(clock))
	}

	if cfg.StoreCacheTTL > 0 {
		opts = append(opts, service.WithStoreCache(cache.NewStoreCache(cfg.StoreCacheTTL)))
	}

	catalog := service.NewCatalogService(dbComponents.CatalogRepo, opts...)
	planner := service.NewPlannerService(catalog)

	return &ServiceComponents{
		Catalog: catalog,
		Planner: planner,
	}
}
