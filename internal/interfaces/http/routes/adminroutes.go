package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/interfaces/http/handlers"
	"github.com/atelier-community/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-community/atelier/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for admin routes.
type AdminRouteConfig struct {
	LevelConfigHandler *handlers.LevelConfigHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupAdminRoutes configures admin routes.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(authorization.RequireAdmin())

	levelConfigs := admin.Group("/level-configs")
	{
		levelConfigs.GET("", cfg.LevelConfigHandler.ListLevelConfigs)
		levelConfigs.GET("/:rank", cfg.LevelConfigHandler.GetLevelConfig)
		levelConfigs.PUT("/:rank", cfg.LevelConfigHandler.UpsertLevelConfig)
		levelConfigs.DELETE("/:rank", cfg.LevelConfigHandler.DeleteLevelConfig)
	}
}
