package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/interfaces/http/handlers"
	"github.com/atelier-community/atelier/internal/interfaces/http/middleware"
)

// EntitlementRouteConfig holds dependencies for viewer-facing routes.
type EntitlementRouteConfig struct {
	EntitlementHandler *handlers.EntitlementHandler
	WorkHandler        *handlers.WorkHandler
	UploadHandler      *handlers.UploadHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupEntitlementRoutes configures entitlement, projection and upload routes.
// Guests may call everything except upload consumption.
func SetupEntitlementRoutes(engine *gin.Engine, cfg *EntitlementRouteConfig) {
	entitlements := engine.Group("/entitlements")
	entitlements.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		entitlements.GET("/me", cfg.EntitlementHandler.GetMyEntitlements)
		entitlements.GET("/:feature", cfg.EntitlementHandler.GetFeature)
	}

	works := engine.Group("/works")
	works.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		works.POST("/project", cfg.WorkHandler.ProjectWork)
		works.POST("/project-list", cfg.WorkHandler.ProjectWorkList)
	}

	uploads := engine.Group("/uploads")
	uploads.Use(cfg.AuthMiddleware.RequireAuth())
	{
		uploads.POST("/consume", cfg.UploadHandler.ConsumeUpload)
	}
}
