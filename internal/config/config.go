package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr        string
	Env             string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Database
	DB DBConfig
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver       string
	URL          string
	SQLitePath   string
	MaxOpenConns int
}

// IsDevelopment switches logging and gin into their verbose modes.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:        getEnv("HTTP_ADDR", ":3003"),
		Env:             strings.ToLower(getEnv("APP_ENV", "production")),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		CORSOrigins:     getEnvSlice("CORS_ORIGINS", []string{"*"}),

		DB: DBConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			URL:          getEnv("DATABASE_URL", "postgres://localhost:5432/crm?sslmode=disable"),
			SQLitePath:   getEnv("SQLITE_PATH", "./data/crm.db"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		},
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
