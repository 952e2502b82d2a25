package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Debug       bool
	Clinical    ClinicalDBConfig
	LocalDBPath string
}

// ClinicalDBConfig holds connection details for the external clinical-records
// database. The application only ever reads from it.
type ClinicalDBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	clinical := ClinicalDBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "sa"),
		Password: getEnv("DB_PASS", ""),
		Name:     getEnv("DB_NAME", "covid"),
	}

	// Build DSN for the SQL Server connection
	clinical.DSN = fmt.Sprintf("sqlserver://%s:%s@%s?database=%s",
		clinical.User, clinical.Password, clinical.Host, clinical.Name)

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Origin:      getEnv("ORIGIN", "*"),
		Environment: getEnv("APP_ENV", "development"),
		Debug:       getEnv("DEBUG", "") != "",
		Clinical:    clinical,
		LocalDBPath: getEnv("LOCAL_DB_PATH", "./database.db"),
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
