package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"covid-results-server/internal/clinical"
	"covid-results-server/internal/utils"
)

// StatusHandler verifies the connection to the clinical-records database and
// the presence of data for the necessary columns.
type StatusHandler struct {
	Gateway clinical.Gateway
	Log     *zap.Logger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(gateway clinical.Gateway, log *zap.Logger) *StatusHandler {
	return &StatusHandler{Gateway: gateway, Log: log}
}

// GetStatus handles GET /status.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	if err := h.Gateway.Probe(); err != nil {
		h.Log.Error("attempt to verify API status failed", zap.Error(err))
		utils.InternalServerError(c, "Attempt to verify API status failed.")
		return
	}

	h.Log.Info("API status verified")
	c.String(http.StatusOK, "API status verified.")
}
