package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/application/levelconfig/dto"
	"github.com/atelier-community/atelier/internal/shared/logger"
	"github.com/atelier-community/atelier/internal/shared/utils"
)

// LevelConfigHandler serves the admin level configuration endpoints
type LevelConfigHandler struct {
	upsertUC upsertLevelConfigUseCase
	getUC    getLevelConfigUseCase
	listUC   listLevelConfigsUseCase
	deleteUC deleteLevelConfigUseCase
	logger   logger.Interface
}

func NewLevelConfigHandler(
	upsertUC upsertLevelConfigUseCase,
	getUC getLevelConfigUseCase,
	listUC listLevelConfigsUseCase,
	deleteUC deleteLevelConfigUseCase,
	logger logger.Interface,
) *LevelConfigHandler {
	return &LevelConfigHandler{
		upsertUC: upsertUC,
		getUC:    getUC,
		listUC:   listUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// ListLevelConfigs handles GET /admin/level-configs
func (h *LevelConfigHandler) ListLevelConfigs(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetLevelConfig handles GET /admin/level-configs/:rank
func (h *LevelConfigHandler) GetLevelConfig(c *gin.Context) {
	rank, err := utils.ParseIntParam(c, "rank", "rank")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), rank)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpsertLevelConfig handles PUT /admin/level-configs/:rank
func (h *LevelConfigHandler) UpsertLevelConfig(c *gin.Context) {
	rank, err := utils.ParseIntParam(c, "rank", "rank")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpsertLevelConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid upsert level config request", "rank", rank, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.upsertUC.Execute(c.Request.Context(), rank, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "level configuration saved", result)
}

// DeleteLevelConfig handles DELETE /admin/level-configs/:rank
func (h *LevelConfigHandler) DeleteLevelConfig(c *gin.Context) {
	rank, err := utils.ParseIntParam(c, "rank", "rank")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), rank); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
