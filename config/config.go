package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	Port    int
	DevMode bool

	// Database
	DBPath string

	// Analytics
	AccountBalance float64 // Basis for return/risk percentages; 0 falls back to entry notional

	// Insight Service
	InsightAPIKey  string
	InsightModel   string
	InsightBaseURL string
	InsightTimeout time.Duration

	// Logging
	LogLevel  string
	LogPretty bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.Port, err = getEnvAsInt("PORT", 8080)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PORT: %v", err))
	} else if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, "PORT must be between 1 and 65535")
	}
	cfg.DevMode = getEnvAsBool("DEV_MODE", false)

	cfg.DBPath = getEnv("DB_PATH", "./data/journal.db")

	cfg.AccountBalance, err = getEnvAsFloat("ACCOUNT_BALANCE", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid ACCOUNT_BALANCE: %v", err))
	} else if cfg.AccountBalance < 0 {
		errs = append(errs, "ACCOUNT_BALANCE cannot be negative")
	}

	// Insight service is optional; the API answers 503 when unconfigured.
	cfg.InsightAPIKey = getEnv("INSIGHT_API_KEY", "")
	cfg.InsightModel = getEnv("INSIGHT_MODEL", "gpt-4o-mini")
	cfg.InsightBaseURL = getEnv("INSIGHT_BASE_URL", "")
	insightTimeoutSec, err := getEnvAsInt("INSIGHT_TIMEOUT_SECONDS", 30)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid INSIGHT_TIMEOUT_SECONDS: %v", err))
	} else if insightTimeoutSec <= 0 {
		errs = append(errs, "INSIGHT_TIMEOUT_SECONDS must be positive")
	}
	cfg.InsightTimeout = time.Duration(insightTimeoutSec) * time.Second

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogPretty = getEnvAsBool("LOG_PRETTY", false)

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// --- Environment variable helpers ---

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("value '%s' is not a valid integer", valueStr)
	}
	return value, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("value '%s' is not a valid number", valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallback
	}
	return value
}
