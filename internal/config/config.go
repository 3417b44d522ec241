package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database (postgres URL or sqlite file path)
	DatabaseURL string

	// Sessions
	SessionSecret   string
	SessionTTLHours int

	// Background workers
	WorkerCount int

	// Audit retention
	AuditRetentionDays int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Seed demo accounts on an empty database (development only)
	SeedDemoData bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", "zeiterfassung.db"),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionTTLHours:    getEnvAsInt("SESSION_TTL_HOURS", 12),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", 3),
		AuditRetentionDays: getEnvAsInt("AUDIT_RETENTION_DAYS", 90),
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		SeedDemoData:       getEnvAsBool("SEED_DEMO_DATA", false),
	}

	if cfg.SessionSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("SESSION_SECRET is required in production")
	}

	// Set default session secret for development
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
