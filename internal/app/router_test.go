//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/mocks"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func testServiceComponents(t *testing.T) *ServiceComponents {
	t.Helper()
	catalog := service.NewCatalogService(new(mocks.MockCatalogRepositoryInterface))
	return &ServiceComponents{
		Catalog: catalog,
		Planner: service.NewPlannerService(catalog),
	}
}

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name              string
		serviceComponents *ServiceComponents
		dbComponents      *DatabaseComponents
		cfg               config.Config
		validate          func(*testing.T, *RouterComponents)
	}{
		{
			name: "creates router with planner only",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  100,
					RateWindow: time.Minute,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.HealthHandler)
				assert.Nil(t, components.Handler)
				assert.False(t, components.Config.EnableAuth)
				assert.True(t, components.Config.EnableIdempotency)
				assert.Equal(t, 100, components.Config.RateLimit)
			},
		},
		{
			name: "creates router with auth enabled",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  50,
					RateWindow: 30 * time.Second,
				},
				Auth: config.AuthConfig{
					Enabled: true,
					APIKeys: map[string]bool{"test-key": true},
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"test-key": true}, components.Config.APIKeys)
			},
		},
		{
			name: "creates router with database components",
			dbComponents: &DatabaseComponents{
				CatalogRepo:    new(mocks.MockCatalogRepositoryInterface),
				LoggingService: mocks.NewMockLoggingService(t),
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Config.LoggingService)
			},
		},
		{
			name: "creates router with nil dbComponents",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.Nil(t, components.Config.LoggingService)
				assert.Nil(t, components.Config.Planner)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeRouter(tt.serviceComponents, tt.dbComponents, tt.cfg)
			if tt.validate != nil {
				tt.validate(t, components)
			}
		})
	}
}

func TestInitializeRouter_WithPlanner(t *testing.T) {
	serviceComponents := testServiceComponents(t)

	components := InitializeRouter(serviceComponents, nil, config.Config{
		Server: config.ServerConfig{
			RateLimit:  10,
			RateWindow: time.Second,
		},
	})

	assert.NotNil(t, components.Handler)
	assert.NotNil(t, components.Config.Planner)
	assert.NotNil(t, components.Config.Catalog)
}
