package models

import (
	"time"
)

// TestRecord represents one row of the external CovidTestResults table.
// Column names follow the lab system's schema, not gorm's conventions.
// ResultedDateTime and Result are NULL while a result is pending.
type TestRecord struct {
	PatientName        string     `gorm:"column:PatientName" json:"patientName"`
	DOB                string     `gorm:"column:DOB" json:"dob"`
	CollectionDateTime time.Time  `gorm:"column:CollectionDateTime" json:"collectionDateTime"`
	ResultedDateTime   *time.Time `gorm:"column:ResultedDateTime" json:"resultedDateTime"`
	Result             *string    `gorm:"column:Result" json:"result"`
	SpecimenID         string     `gorm:"column:SpecimenID" json:"specimenId"`
	HCN                string     `gorm:"column:HCN" json:"-"`
	LastName           string     `gorm:"column:LastName" json:"-"`
}

// TableName maps TestRecord to the lab system's table.
func (TestRecord) TableName() string {
	return "CovidTestResults"
}
