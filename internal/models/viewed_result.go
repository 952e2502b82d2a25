package models

import (
	"time"
)

// ViewedResult records the delivery of a Negative test result to a client.
// One row per delivery, purged after the 1-year retention window.
type ViewedResult struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ViewedTime time.Time `gorm:"column:viewedTime;autoCreateTime" json:"viewedTime"`
	SpecimenID string    `gorm:"column:specimenId" json:"specimenId"`
}

// TableName keeps the table name used by the deployed database file.
func (ViewedResult) TableName() string {
	return "viewed_result"
}
