// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file holding imported almanacs

	// Calendar data
	AlmanacSource  string // astronomical, file, sqlite
	AlmanacFile    string // almanac text file, required for the file source
	LunarTablePath string // optional TOML year table replacing the embedded one

	// Cache
	RedisURL string        // optional; enables the almanac window cache
	CacheTTL time.Duration // zero keeps entries until evicted

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text, console
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Almanac sources
const (
	SourceAstronomical = "astronomical"
	SourceFile         = "file"
	SourceSQLite       = "sqlite"
)

// Load reads configuration from environment variables, first loading a
// .env file if one is present.
func Load() (*Config, error) {
	// Missing .env is fine; production sets the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/almanac.db")

	cfg.AlmanacSource = getEnv("ALMANAC_SOURCE", SourceAstronomical)
	cfg.AlmanacFile = getEnv("ALMANAC_FILE", "")
	cfg.LunarTablePath = getEnv("LUNAR_TABLE_PATH", "")

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", 24*time.Hour)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	switch c.AlmanacSource {
	case SourceAstronomical:
	case SourceFile:
		if c.AlmanacFile == "" {
			errs = append(errs, errors.New("ALMANAC_FILE is required when ALMANAC_SOURCE is file"))
		}
	case SourceSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, errors.New("DATABASE_PATH is required when ALMANAC_SOURCE is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("ALMANAC_SOURCE must be one of: astronomical, file, sqlite; got %q", c.AlmanacSource))
	}

	if c.RedisURL != "" {
		if _, err := redis.ParseURL(c.RedisURL); err != nil {
			errs = append(errs, fmt.Errorf("REDIS_URL is invalid: %w", err))
		}
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text, console; got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration reads a Go duration such as "90m", falling back on parse errors.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
