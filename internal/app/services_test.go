//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.PlannerConfig
		dbComponents *DatabaseComponents
		validate     func(*testing.T, *ServiceComponents)
	}{
		{
			name: "creates services with default config",
			cfg: config.PlannerConfig{
				Timezone:      "America/Sao_Paulo",
				StoreCacheTTL: 5 * time.Second,
			},
			dbComponents: &DatabaseComponents{
				CatalogRepo: new(mocks.MockCatalogRepositoryInterface),
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Catalog)
				assert.NotNil(t, components.Planner)
			},
		},
		{
			name: "falls back when timezone is invalid",
			cfg: config.PlannerConfig{
				Timezone: "Not/AZone",
			},
			dbComponents: &DatabaseComponents{
				CatalogRepo: new(mocks.MockCatalogRepositoryInterface),
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Planner)
			},
		},
		{
			name: "zero cache TTL disables store cache",
			cfg: config.PlannerConfig{
				Timezone:      "Europe/Amsterdam",
				StoreCacheTTL: 0,
			},
			dbComponents: &DatabaseComponents{
				CatalogRepo: new(mocks.MockCatalogRepositoryInterface),
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Catalog)
			},
		},
		{
			name:         "returns nil without database components",
			cfg:          config.PlannerConfig{},
			dbComponents: nil,
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.Nil(t, components)
			},
		},
		{
			name:         "returns nil without catalog repository",
			cfg:          config.PlannerConfig{},
			dbComponents: &DatabaseComponents{},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.Nil(t, components)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeServices(tt.cfg, tt.dbComponents)
			if tt.validate != nil {
				tt.validate(t, components)
			}
		})
	}
}
