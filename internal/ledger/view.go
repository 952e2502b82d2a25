package ledger

import (
	"time"

	"gorm.io/gorm"

	"covid-results-server/internal/models"
)

// RecentView is one delivered-result record surfaced to the audit routine.
type RecentView struct {
	SpecimenID string    `gorm:"column:specimenId" json:"specimenId"`
	ViewedTime time.Time `gorm:"column:viewedTime" json:"viewedTime"`
}

// ViewLedger is the append-only log of delivered Negative results, keyed by
// the clinical record's opaque specimen identifier.
type ViewLedger interface {
	// RecordView appends a delivery record with the current timestamp.
	RecordView(specimenID string) error

	// PurgeExpired deletes records older than the 1-year retention period.
	PurgeExpired() error

	// ListRecentViews returns the (specimen, viewedTime) pairs from the
	// trailing 7 days for the verification routine.
	ListRecentViews() ([]RecentView, error)
}

// Compile-time check that the gorm implementation satisfies the contract.
var _ ViewLedger = (*SQLViewLedger)(nil)

// SQLViewLedger implements ViewLedger on the local store.
type SQLViewLedger struct {
	DB *gorm.DB
}

// NewSQLViewLedger creates a new SQLViewLedger.
func NewSQLViewLedger(db *gorm.DB) *SQLViewLedger {
	return &SQLViewLedger{DB: db}
}

func (l *SQLViewLedger) RecordView(specimenID string) error {
	viewed := models.ViewedResult{SpecimenID: specimenID}
	return l.DB.Create(&viewed).Error
}

func (l *SQLViewLedger) PurgeExpired() error {
	cutoff := time.Now().Add(-retentionPeriod)
	return l.DB.
		Where("viewedTime < ?", cutoff).
		Delete(&models.ViewedResult{}).Error
}

func (l *SQLViewLedger) ListRecentViews() ([]RecentView, error) {
	cutoff := time.Now().Add(-activeWindow)

	var views []RecentView
	err := l.DB.
		Model(&models.ViewedResult{}).
		Select("specimenId", "viewedTime").
		Where("viewedTime > ?", cutoff).
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
