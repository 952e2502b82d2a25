package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"covid-results-server/internal/clinical"
	"covid-results-server/internal/ledger"
	"covid-results-server/internal/results"
	"covid-results-server/internal/utils"
)

// AuditHandler cross-checks every recently delivered result against the
// clinical store, confirming the delivered classification was in fact
// Negative as of the viewing time. A self-check, not a client feature.
type AuditHandler struct {
	Gateway clinical.Gateway
	Views   ledger.ViewLedger
	Log     *zap.Logger
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(gateway clinical.Gateway, views ledger.ViewLedger, log *zap.Logger) *AuditHandler {
	return &AuditHandler{Gateway: gateway, Views: views, Log: log}
}

// VerifyNegativeResults handles GET /verify-negative-results.
func (h *AuditHandler) VerifyNegativeResults(c *gin.Context) {
	views, err := h.Views.ListRecentViews()
	if err != nil {
		h.Log.Error("attempt to verify delivered results failed", zap.Error(err))
		utils.InternalServerError(c, "Attempt to verify delivered results failed.")
		return
	}

	failed := 0
	for _, view := range views {
		result, err := h.Gateway.ResultBySpecimenBefore(view.SpecimenID, view.ViewedTime)
		if err != nil {
			// A delivered result with no clinical record entered by the
			// viewing time cannot have classified Negative.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.Log.Warn("delivered result has no clinical record as of viewing time",
					zap.String("specimenId", view.SpecimenID))
				failed++
				continue
			}
			h.Log.Error("attempt to verify delivered results failed", zap.Error(err))
			utils.InternalServerError(c, "Attempt to verify delivered results failed.")
			return
		}
		if !results.IsNegative(result) {
			h.Log.Warn("delivered result no longer classifies as Negative",
				zap.String("specimenId", view.SpecimenID))
			failed++
		}
	}

	if failed > 0 {
		c.String(http.StatusBadRequest,
			fmt.Sprintf("%d of %d delivered results failed verification.", failed, len(views)))
		return
	}

	c.String(http.StatusOK, fmt.Sprintf("Verified %d delivered results as Negative.", len(views)))
}
