package http

import (
	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-community/atelier/internal/interfaces/http/routes"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router from a wired container
func NewRouter(c *Container) *Router {
	return &Router{Container: c}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Metrics(r.metrics))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	routes.SetupEntitlementRoutes(r.engine, &routes.EntitlementRouteConfig{
		EntitlementHandler: r.entitlementHandler,
		WorkHandler:        r.workHandler,
		UploadHandler:      r.uploadHandler,
		AuthMiddleware:     r.authMiddleware,
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		LevelConfigHandler: r.levelConfigHandler,
		AuthMiddleware:     r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
