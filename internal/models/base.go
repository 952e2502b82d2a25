package models

import (
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenClinicalDB connects to the external clinical-records database.
// The CovidTestResults table belongs to the lab system, so no migration
// is ever issued against this connection.
func OpenClinicalDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlserver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// OpenLocalDB opens the SQLite file backing the notification and viewed-result
// ledgers, creating the tables if absent.
func OpenLocalDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate the locally owned tables
	if err := db.AutoMigrate(
		&NotificationRequest{},
		&ViewedResult{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
