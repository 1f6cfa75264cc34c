// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	DatabaseURL string
	DBMaxConns  int32

	// PublicURL is the site base used in share links.
	PublicURL string

	// Redis is optional: when RedisURL is empty the admission controller
	// falls back to the in-memory store.
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Admission controller windows per call site.
	SearchRateLimit  int
	SearchRateWindow time.Duration
	PageRateLimit    int
	PageRateWindow   time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DBMaxConns:       int32(getEnvInt("DB_MAX_CONNS", 25)),
		PublicURL:        getEnv("PUBLIC_URL", "https://vasanam.in"),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		SearchRateLimit:  getEnvInt("SEARCH_RATE_LIMIT", 30),
		SearchRateWindow: time.Duration(getEnvInt("SEARCH_RATE_WINDOW_MS", 60000)) * time.Millisecond,
		PageRateLimit:    getEnvInt("PAGE_RATE_LIMIT", 30),
		PageRateWindow:   time.Duration(getEnvInt("PAGE_RATE_WINDOW_MS", 60000)) * time.Millisecond,
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SearchRateLimit <= 0 {
		return fmt.Errorf("SEARCH_RATE_LIMIT must be positive, got %d", c.SearchRateLimit)
	}
	if c.SearchRateWindow <= 0 {
		return fmt.Errorf("SEARCH_RATE_WINDOW_MS must be positive, got %d", c.SearchRateWindow.Milliseconds())
	}
	if c.PageRateLimit <= 0 {
		return fmt.Errorf("PAGE_RATE_LIMIT must be positive, got %d", c.PageRateLimit)
	}
	if c.PageRateWindow <= 0 {
		return fmt.Errorf("PAGE_RATE_WINDOW_MS must be positive, got %d", c.PageRateWindow.Milliseconds())
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
