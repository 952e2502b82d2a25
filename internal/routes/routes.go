package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"covid-results-server/internal/clinical"
	"covid-results-server/internal/handlers"
	"covid-results-server/internal/ledger"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, gateway clinical.Gateway, notifications ledger.NotificationLedger, views ledger.ViewLedger, log *zap.Logger) {
	// Initialize handlers
	statusHandler := handlers.NewStatusHandler(gateway, log)
	resultHandler := handlers.NewTestResultHandler(gateway, views, log)
	notificationHandler := handlers.NewNotificationHandler(gateway, notifications, log)
	auditHandler := handlers.NewAuditHandler(gateway, views, log)

	router.GET("/status", statusHandler.GetStatus)
	router.PUT("/test-result", resultHandler.RetrieveResult)
	router.PUT("/notification-request", notificationHandler.RegisterRequest)
	router.GET("/to-notify", notificationHandler.ListDueNotifications)
	router.GET("/verify-negative-results", auditHandler.VerifyNegativeResults)
}
