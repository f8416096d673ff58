package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup registers authenticated planning routes on a router group.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// PublicRouteGroup registers routes exposed without authentication, such as
// health probes.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}
