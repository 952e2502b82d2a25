package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"covid-results-server/internal/clinical"
	"covid-results-server/internal/ledger"
	"covid-results-server/internal/results"
	"covid-results-server/internal/utils"
)

// TestResultHandler serves retrieval of a test result by identity match.
type TestResultHandler struct {
	Gateway clinical.Gateway
	Views   ledger.ViewLedger
	Log     *zap.Logger
}

// NewTestResultHandler creates a new TestResultHandler.
func NewTestResultHandler(gateway clinical.Gateway, views ledger.ViewLedger, log *zap.Logger) *TestResultHandler {
	return &TestResultHandler{Gateway: gateway, Views: views, Log: log}
}

// TestResultRequest represents the request body for retrieving a test result.
type TestResultRequest struct {
	LastName         string `json:"lastName" binding:"required"`
	HealthCareNumber string `json:"healthCareNumber" binding:"required"`
	BirthDate        string `json:"birthDate" binding:"required"`
}

// TestResultResponse is the body returned for a released Negative result.
// Result is always the literal "Negative", never the stored value.
type TestResultResponse struct {
	PatientName            string     `json:"patientName"`
	BirthDate              string     `json:"birthDate"`
	CollectionTimestamp    time.Time  `json:"collectionTimestamp"`
	ResultEnteredTimestamp *time.Time `json:"resultEnteredTimestamp"`
	Result                 string     `json:"result"`
}

// RetrieveResult handles PUT /test-result.
func (h *TestResultHandler) RetrieveResult(c *gin.Context) {
	var req TestResultRequest
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
		h.Log.Error("attempt to retrieve test result failed", zap.Error(err))
		utils.InternalServerError(c, "Attempt to retrieve test result failed.")
		return
	}

	if !results.IsNegative(record.Result) {
		// Response for any test result not explicitly Negative. The client
		// cannot tell pending from positive over this channel.
		c.Status(http.StatusNoContent)
		return
	}

	// Record the delivery of the Negative result, including the opaque
	// specimen ID. Not a service-breaking error, so log and continue.
	if err := h.Views.RecordView(record.SpecimenID); err != nil {
		h.Log.Error("attempt to insert into viewed_result failed", zap.Error(err))
	}
	if err := h.Views.PurgeExpired(); err != nil {
		h.Log.Error("attempt to delete from viewed_result failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, TestResultResponse{
		PatientName:            results.TitleCasePatientName(record.PatientName),
		BirthDate:              results.FormatBirthDate(record.DOB),
		CollectionTimestamp:    record.CollectionDateTime,
		ResultEnteredTimestamp: record.ResultedDateTime,
		Result:                 "Negative",
	})
}
