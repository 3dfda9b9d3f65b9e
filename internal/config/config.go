// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Port          string
	CatalogDBPath string

	SessionBackend string // "memory" or "redis"
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	SessionTTL    time.Duration
	SweepInterval time.Duration

	BookingLeadDays int
	SupportPhone    string

	SMS SMSConfig
}

// SMSConfig configures the outbound SMS gateway. An empty APIKey disables
// delivery.
type SMSConfig struct {
	Username string
	APIKey   string
	Endpoint string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		CatalogDBPath: getEnv("CATALOG_DB_PATH", "./data/catalog.db"),

		SessionBackend: getEnv("SESSION_BACKEND", BackendMemory),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),

		SessionTTL:    getEnvDuration("SESSION_TTL", 30*time.Minute),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", 5*time.Minute),

		BookingLeadDays: getEnvInt("BOOKING_LEAD_DAYS", 7),
		SupportPhone:    getEnv("SUPPORT_PHONE", "+250 788 123 456"),

		SMS: SMSConfig{
			Username: getEnv("AT_USERNAME", ""),
			APIKey:   getEnv("AT_API_KEY", ""),
			Endpoint: getEnv("AT_ENDPOINT", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.CatalogDBPath == "" {
		return fmt.Errorf("CATALOG_DB_PATH cannot be empty")
	}
	switch c.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR cannot be empty with SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q", BackendMemory, BackendRedis)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	if c.BookingLeadDays <= 0 {
		return fmt.Errorf("BOOKING_LEAD_DAYS must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
