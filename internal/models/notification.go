package models

import (
	"time"
)

// NotificationRequest records a client's request to be notified by SMS once a
// pending test result becomes available. Rows are append-only and purged after
// the 1-year retention window; the specimen ID is an opaque reference into the
// clinical-records system.
type NotificationRequest struct {
	ID                    uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RequestTime           time.Time `gorm:"column:requestTime;autoCreateTime" json:"requestTime"`
	PreferredLanguage     string    `gorm:"column:preferredLanguage" json:"preferredLanguage"`
	NotificationTelephone string    `gorm:"column:notificationTelephone" json:"notificationTelephone"`
	SpecimenID            string    `gorm:"column:specimenId" json:"specimenId"`
}

// TableName keeps the table name used by the deployed database file.
func (NotificationRequest) TableName() string {
	return "to_notify"
}
