package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	DevMode      bool
	LogLevel     string
	DatabasePath string

	// Watchlist is the set of tickers the price sync job keeps fresh
	Watchlist []string

	// Analysis defaults, overridable per request
	NumSamples          int
	RiskFreeRate        float64
	AnnualizationFactor int
	RandomSeed          *int64 // nil seeds from entropy

	PriceSyncSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnvAsInt("PORT", 8001),
		DevMode:             getEnvAsBool("DEV_MODE", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DatabasePath:        getEnv("DATABASE_PATH", "./data/frontier.db"),
		Watchlist:           splitList(getEnv("WATCHLIST", "")),
		NumSamples:          getEnvAsInt("NUM_SAMPLES", 10000),
		RiskFreeRate:        getEnvAsFloat("RISK_FREE_RATE", 0.03),
		AnnualizationFactor: getEnvAsInt("ANNUALIZATION_FACTOR", 252),
		PriceSyncSchedule:   getEnv("PRICE_SYNC_SCHEDULE", "@daily"),
	}

	if value := os.Getenv("RANDOM_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("RANDOM_SEED must be an integer, got %q", value)
		}
		cfg.RandomSeed = &seed
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and sane
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.NumSamples < 1 {
		return fmt.Errorf("NUM_SAMPLES must be >= 1, got %d", c.NumSamples)
	}
	if c.AnnualizationFactor < 1 {
		return fmt.Errorf("ANNUALIZATION_FACTOR must be >= 1, got %d", c.AnnualizationFactor)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToUpper(strings.TrimSpace(p)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
