package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/application/entitlement/dto"
	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-community/atelier/internal/shared/logger"
	"github.com/atelier-community/atelier/internal/shared/utils"
)

// WorkHandler redacts work records for the current viewer
type WorkHandler struct {
	assembler responseAssembler
	logger    logger.Interface
}

func NewWorkHandler(assembler responseAssembler, logger logger.Interface) *WorkHandler {
	return &WorkHandler{
		assembler: assembler,
		logger:    logger,
	}
}

// ProjectWork handles POST /works/project. A work the viewer cannot see is
// answered with 401 for guests and 403 for everyone else.
func (h *WorkHandler) ProjectWork(c *gin.Context) {
	var req dto.WorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid project work request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	viewer := middleware.ViewerFrom(c)
	resp, err := h.assembler.BuildWorkResponse(c.Request.Context(), req.Work, viewer)
	if err != nil {
		h.handleProjectionError(c, err)
		return
	}

	if !resp.Visible {
		if viewer == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "login required to view this work")
			return
		}
		utils.ErrorResponse(c, http.StatusForbidden, "you do not have access to this work")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// ProjectWorkList handles POST /works/project-list
func (h *WorkHandler) ProjectWorkList(c *gin.Context) {
	var req dto.WorkListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid project work list request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.assembler.BuildWorkListResponse(c.Request.Context(), req.Works, middleware.ViewerFrom(c))
	if err != nil {
		h.handleProjectionError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *WorkHandler) handleProjectionError(c *gin.Context, err error) {
	if errors.Is(err, work.ErrMissingVisibility) {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Errorw("failed to project work", "error", err)
	utils.ErrorResponseWithError(c, err)
}
