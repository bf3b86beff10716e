// ABOUTME: Configuration loader for backend service
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/markalston/evse-calc/backend/models"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, for memoised installation reports
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MaxBodyBytes       int64    // request body limit for calculation endpoints

	// Rate Limiting
	RateLimitEnabled   bool // Enable rate limiting (default: true)
	RateLimitCalculate int  // Requests per minute for calculation endpoints (default: 60)
	RateLimitDefault   int  // Requests per minute for all other endpoints (default: 100)

	// Reference data
	ReferenceDataFile string // optional YAML override of the built-in tables

	// Safety policy overrides (zero = keep the table value)
	MaxVoltageDropPct       float64
	LoadManagedDiversityCap float64
	DesignCurrentFactor     float64
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the
// environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	} else {
		slog.Debug("Loaded environment file", "path", envFile)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 64*1024)),

		RateLimitEnabled:   getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitCalculate: getEnvInt("RATE_LIMIT_CALCULATE", 60),
		RateLimitDefault:   getEnvInt("RATE_LIMIT_DEFAULT", 100),

		ReferenceDataFile: os.Getenv("REFERENCE_DATA_FILE"),

		MaxVoltageDropPct:       getEnvFloat("MAX_VOLTAGE_DROP_PCT", 0),
		LoadManagedDiversityCap: getEnvFloat("LOAD_MANAGED_DIVERSITY_CAP", 0),
		DesignCurrentFactor:     getEnvFloat("DESIGN_CURRENT_FACTOR", 0),
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_CALCULATE", cfg.RateLimitCalculate},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	if cfg.MaxBodyBytes < 1024 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be at least 1024, got %d", cfg.MaxBodyBytes)
	}

	// Validate safety overrides
	if v := cfg.MaxVoltageDropPct; v != 0 && (v < 0 || v > 100) {
		return nil, fmt.Errorf("MAX_VOLTAGE_DROP_PCT must be in (0, 100], got %g", v)
	}
	if v := cfg.LoadManagedDiversityCap; v != 0 && (v < 0 || v > 1) {
		return nil, fmt.Errorf("LOAD_MANAGED_DIVERSITY_CAP must be in (0, 1], got %g", v)
	}
	if v := cfg.DesignCurrentFactor; v != 0 && v < 1 {
		return nil, fmt.Errorf("DESIGN_CURRENT_FACTOR must be at least 1, got %g", v)
	}

	return cfg, nil
}

// ApplySafetyOverrides copies any configured policy overrides onto freshly
// built reference tables. Call before the tables are handed to a calculator.
func (c *Config) ApplySafetyOverrides(ref *models.ReferenceData) {
	if c.MaxVoltageDropPct > 0 {
		ref.Safety.MaxVoltageDropPct = c.MaxVoltageDropPct
	}
	if c.LoadManagedDiversityCap > 0 {
		ref.Safety.LoadManagedDiversityCap = c.LoadManagedDiversityCap
	}
	if c.DesignCurrentFactor > 0 {
		ref.Safety.DesignCurrentFactor = c.DesignCurrentFactor
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
