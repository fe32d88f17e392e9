package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-community/atelier/internal/shared/logger"
	"github.com/atelier-community/atelier/internal/shared/utils"
)

// EntitlementHandler reports what the current viewer may do
type EntitlementHandler struct {
	assembler responseAssembler
	resolver  featureResolver
	logger    logger.Interface
}

func NewEntitlementHandler(assembler responseAssembler, resolver featureResolver, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{
		assembler: assembler,
		resolver:  resolver,
		logger:    logger,
	}
}

// GetMyEntitlements handles GET /entitlements/me
func (h *EntitlementHandler) GetMyEntitlements(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	utils.SuccessResponse(c, http.StatusOK, "", h.assembler.BuildViewerEntitlements(c.Request.Context(), viewer))
}

// GetFeature handles GET /entitlements/:feature
func (h *EntitlementHandler) GetFeature(c *gin.Context) {
	feature, err := entitlement.ParseFeature(c.Param("feature"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), middleware.ViewerFrom(c), feature)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
