package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"covid-results-server/internal/clinical"
	"covid-results-server/internal/ledger"
	"covid-results-server/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Compile-time check to ensure MockGateway implements clinical.Gateway
var _ clinical.Gateway = (*MockGateway)(nil)

// MockGateway is a mock implementation of clinical.Gateway.
type MockGateway struct {
	LatestByIdentityFunc       func(hcn, dob, lastName string) (*models.TestRecord, error)
	ResultBySpecimenFunc       func(specimenID string) (*string, error)
	ResultBySpecimenBeforeFunc func(specimenID string, before time.Time) (*string, error)
	ProbeFunc                  func() error
}

func (m *MockGateway) LatestByIdentity(hcn, dob, lastName string) (*models.TestRecord, error) {
	if m.LatestByIdentityFunc != nil {
		return m.LatestByIdentityFunc(hcn, dob, lastName)
	}
	return nil, errors.New("LatestByIdentityFunc not implemented in mock")
}

func (m *MockGateway) ResultBySpecimen(specimenID string) (*string, error) {
	if m.ResultBySpecimenFunc != nil {
		return m.ResultBySpecimenFunc(specimenID)
	}
	return nil, errors.New("ResultBySpecimenFunc not implemented in mock")
}

func (m *MockGateway) ResultBySpecimenBefore(specimenID string, before time.Time) (*string, error) {
	if m.ResultBySpecimenBeforeFunc != nil {
		return m.ResultBySpecimenBeforeFunc(specimenID, before)
	}
	return nil, errors.New("ResultBySpecimenBeforeFunc not implemented in mock")
}

func (m *MockGateway) Probe() error {
	if m.ProbeFunc != nil {
		return m.ProbeFunc()
	}
	return errors.New("ProbeFunc not implemented in mock")
}

// Compile-time check to ensure MockNotificationLedger implements ledger.NotificationLedger
var _ ledger.NotificationLedger = (*MockNotificationLedger)(nil)

// MockNotificationLedger is a mock implementation of ledger.NotificationLedger.
type MockNotificationLedger struct {
	RecordRequestFunc func(specimenID, telephone, language string) error
	PurgeExpiredFunc  func() error
	ListActiveFunc    func() ([]ledger.PendingNotification, error)

	RecordRequestCalls int
	PurgeExpiredCalls  int
}

func (m *MockNotificationLedger) RecordRequest(specimenID, telephone, language string) error {
	m.RecordRequestCalls++
	if m.RecordRequestFunc != nil {
		return m.RecordRequestFunc(specimenID, telephone, language)
	}
	return nil
}

func (m *MockNotificationLedger) PurgeExpired() error {
	m.PurgeExpiredCalls++
	if m.PurgeExpiredFunc != nil {
		return m.PurgeExpiredFunc()
	}
	return nil
}

func (m *MockNotificationLedger) ListActive() ([]ledger.PendingNotification, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc()
	}
	return nil, errors.New("ListActiveFunc not implemented in mock")
}

// Compile-time check to ensure MockViewLedger implements ledger.ViewLedger
var _ ledger.ViewLedger = (*MockViewLedger)(nil)

// MockViewLedger is a mock implementation of ledger.ViewLedger.
type MockViewLedger struct {
	RecordViewFunc      func(specimenID string) error
	PurgeExpiredFunc    func() error
	ListRecentViewsFunc func() ([]ledger.RecentView, error)

	RecordViewCalls   int
	PurgeExpiredCalls int
}

func (m *MockViewLedger) RecordView(specimenID string) error {
	m.RecordViewCalls++
	if m.RecordViewFunc != nil {
		return m.RecordViewFunc(specimenID)
	}
	return nil
}

func (m *MockViewLedger) PurgeExpired() error {
	m.PurgeExpiredCalls++
	if m.PurgeExpiredFunc != nil {
		return m.PurgeExpiredFunc()
	}
	return nil
}

func (m *MockViewLedger) ListRecentViews() ([]ledger.RecentView, error) {
	if m.ListRecentViewsFunc != nil {
		return m.ListRecentViewsFunc()
	}
	return nil, errors.New("ListRecentViewsFunc not implemented in mock")
}

func strptr(s string) *string {
	return &s
}

func timeptr(tm time.Time) *time.Time {
	return &tm
}

// performRequest runs one request through a router and captures the response.
func performRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
