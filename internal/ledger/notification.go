package ledger

import (
	"time"

	"gorm.io/gorm"

	"covid-results-server/internal/models"
)

// retentionPeriod is how long ledger rows are kept before being purged.
const retentionPeriod = 365 * 24 * time.Hour

// activeWindow bounds the read surface of both ledgers.
const activeWindow = 7 * 24 * time.Hour

// PendingNotification is one deduplicated SMS notification candidate.
type PendingNotification struct {
	SpecimenID            string `gorm:"column:specimenId" json:"specimenId"`
	NotificationTelephone string `gorm:"column:notificationTelephone" json:"notificationTelephone"`
	PreferredLanguage     string `gorm:"column:preferredLanguage" json:"preferredLanguage"`
}

// NotificationLedger is the append-only request log of SMS notification
// requests. Rows are never updated; retention is applied opportunistically by
// callers via PurgeExpired after each insert.
type NotificationLedger interface {
	// RecordRequest appends a notification request with the current timestamp.
	RecordRequest(specimenID, telephone, language string) error

	// PurgeExpired deletes requests older than the 1-year retention period.
	PurgeExpired() error

	// ListActive returns the distinct (specimen, telephone, language) tuples
	// requested within the trailing 7 days.
	ListActive() ([]PendingNotification, error)
}

// Compile-time check that the gorm implementation satisfies the contract.
var _ NotificationLedger = (*SQLNotificationLedger)(nil)

// SQLNotificationLedger implements NotificationLedger on the local store.
type SQLNotificationLedger struct {
	DB *gorm.DB
}

// NewSQLNotificationLedger creates a new SQLNotificationLedger.
func NewSQLNotificationLedger(db *gorm.DB) *SQLNotificationLedger {
	return &SQLNotificationLedger{DB: db}
}

func (l *SQLNotificationLedger) RecordRequest(specimenID, telephone, language string) error {
	request := models.NotificationRequest{
		SpecimenID:            specimenID,
		NotificationTelephone: telephone,
		PreferredLanguage:     language,
	}
	return l.DB.Create(&request).Error
}

func (l *SQLNotificationLedger) PurgeExpired() error {
	cutoff := time.Now().Add(-retentionPeriod)
	return l.DB.
		Where("requestTime < ?", cutoff).
		Delete(&models.NotificationRequest{}).Error
}

func (l *SQLNotificationLedger) ListActive() ([]PendingNotification, error) {
	cutoff := time.Now().Add(-activeWindow)

	var pending []PendingNotification
	err := l.DB.
		Model(&models.NotificationRequest{}).
		Distinct("specimenId", "notificationTelephone", "preferredLanguage").
		Where("requestTime > ?", cutoff).
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}
