package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"covid-results-server/internal/clinical"
	"covid-results-server/internal/ledger"
	"covid-results-server/internal/results"
	"covid-results-server/internal/utils"
)

// NotificationHandler serves SMS notification requests and the read surface
// consumed by the external SMS sender.
type NotificationHandler struct {
	Gateway       clinical.Gateway
	Notifications ledger.NotificationLedger
	Log           *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(gateway clinical.Gateway, notifications ledger.NotificationLedger, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Gateway: gateway, Notifications: notifications, Log: log}
}

// NotificationRequestBody represents the request body for registering an SMS
// notification request.
type NotificationRequestBody struct {
	LastName              string `json:"lastName" binding:"required"`
	HealthCareNumber      string `json:"healthCareNumber" binding:"required"`
	BirthDate             string `json:"birthDate" binding:"required"`
	NotificationTelephone string `json:"notificationTelephone" binding:"required"`
	PreferredLanguage     string `json:"preferredLanguage" binding:"required"`
}

// RegisterRequest handles PUT /notification-request.
func (h *NotificationHandler) RegisterRequest(c *gin.Context) {
	var req NotificationRequestBody
	if !utils.BindAndValidate(c, &req) {
		return
	}

	hcn, dob, lastName := results.NormalizeIdentity(req.HealthCareNumber, req.BirthDate, req.LastName)

	record, err := h.Gateway.LatestByIdentity(hcn, dob, lastName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c)
			return
		}
		h.Log.Error("attempt to request an SMS notification failed", zap.Error(err))
		utils.InternalServerError(c, "Attempt to request an SMS notification failed.")
		return
	}

	// Recording the request is the whole point of this endpoint, so unlike
	// the viewed-result insert a failure here is fatal.
	if err := h.Notifications.RecordRequest(record.SpecimenID, req.NotificationTelephone, req.PreferredLanguage); err != nil {
		h.Log.Error("attempt to insert into to_notify failed", zap.Error(err))
		utils.InternalServerError(c, "Unable to record the request for an SMS notification.")
		return
	}

	// Data retention period is 1 year. Not a service-breaking error, so log
	// and continue.
	if err := h.Notifications.PurgeExpired(); err != nil {
		h.Log.Error("attempt to delete from to_notify failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "SMS notification has been requested."})
}

// ListDueNotifications handles GET /to-notify. Each candidate from the past
// week is cross-checked against the clinical store so that only specimens
// whose current result is a released Negative are handed to the SMS sender.
func (h *NotificationHandler) ListDueNotifications(c *gin.Context) {
	pending, err := h.Notifications.ListActive()
	if err != nil {
		h.Log.Error("attempt to retrieve recent SMS notifications failed", zap.Error(err))
		utils.InternalServerError(c, "Attempt to retrieve recent SMS notifications failed.")
		return
	}

	due := make([]ledger.PendingNotification, 0, len(pending))
	for _, candidate := range pending {
		result, err := h.Gateway.ResultBySpecimen(candidate.SpecimenID)
		if err != nil {
			// A candidate whose lookup fails is dropped, not fatal to the
			// rest of the response.
			h.Log.Error("attempt to cross-check notification candidate failed",
				zap.String("specimenId", candidate.SpecimenID), zap.Error(err))
			continue
		}
		if results.IsNegative(result) {
			due = append(due, candidate)
		}
	}

	c.JSON(http.StatusOK, due)
}
