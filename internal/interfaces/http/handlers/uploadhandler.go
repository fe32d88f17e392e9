package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/application/entitlement/dto"
	"github.com/atelier-community/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-community/atelier/internal/shared/logger"
	"github.com/atelier-community/atelier/internal/shared/utils"
)

type UploadHandler struct {
	consumer uploadConsumer
	logger   logger.Interface
}

func NewUploadHandler(consumer uploadConsumer, logger logger.Interface) *UploadHandler {
	return &UploadHandler{
		consumer: consumer,
		logger:   logger,
	}
}

// ConsumeUpload handles POST /uploads/consume
func (h *UploadHandler) ConsumeUpload(c *gin.Context) {
	remaining, err := h.consumer.Consume(c.Request.Context(), middleware.ViewerFrom(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "upload reserved", dto.ConsumeUploadResponse{RemainingUploads: remaining})
}
