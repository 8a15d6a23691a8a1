package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port    string
	GinMode string
	LogMode string

	// Database configuration
	DBType     string // postgres or sqlite
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBPath     string // sqlite file path

	// LLM configuration
	GeminiAPIKey string
	GeminiModel  string

	// Job board configuration
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string

	// Reminder watcher
	ReminderIntervalMinutes int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		GinMode:                 getEnv("GIN_MODE", "debug"),
		LogMode:                 getEnv("LOG_MODE", "dev"),
		DBType:                  getEnv("DB_TYPE", "sqlite"),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBName:                  getEnv("DB_NAME", "jobassistant"),
		DBUser:                  getEnv("DB_USER", "postgres"),
		DBPassword:              getEnv("DB_PASSWORD", ""),
		DBPath:                  getEnv("DB_PATH", "data/jobs.db"),
		GeminiAPIKey:            getEnv("GEMINI_API_KEY", ""),
		GeminiModel:             getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AdzunaAppID:             getEnv("ADZUNA_APP_ID", ""),
		AdzunaAppKey:            getEnv("ADZUNA_APP_KEY", ""),
		AdzunaCountry:           getEnv("ADZUNA_COUNTRY", "us"),
		ReminderIntervalMinutes: getEnvAsInt("REMINDER_INTERVAL_MINUTES", 15),
	}

	switch cfg.DBType {
	case "postgres", "postgresql":
		if cfg.DBPassword == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required when DB_TYPE is postgres")
		}
	case "sqlite":
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("DB_PATH is required when DB_TYPE is sqlite")
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
