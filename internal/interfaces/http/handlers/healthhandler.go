package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type breakerState interface {
	State() string
}

type HealthHandler struct {
	store breakerState
}

func NewHealthHandler(store breakerState) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthCheck handles GET /health. An open level-config breaker does not make
// the service unhealthy; resolution falls back to the default table.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"levelConfigStore": h.store.State(),
	})
}
