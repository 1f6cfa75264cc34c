package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/vasanam")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SearchRateLimit != 30 {
		t.Errorf("SearchRateLimit = %d, want 30", cfg.SearchRateLimit)
	}
	if cfg.SearchRateWindow != time.Minute {
		t.Errorf("SearchRateWindow = %v, want 1m", cfg.SearchRateWindow)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without DATABASE_URL, want error")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/vasanam")
	t.Setenv("SEARCH_RATE_LIMIT", "10")
	t.Setenv("SEARCH_RATE_WINDOW_MS", "5000")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.SearchRateLimit != 10 {
		t.Errorf("SearchRateLimit = %d, want 10", cfg.SearchRateLimit)
	}
	if cfg.SearchRateWindow != 5*time.Second {
		t.Errorf("SearchRateWindow = %v, want 5s", cfg.SearchRateWindow)
	}
}

func TestLoad_RejectsNonPositiveLimit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/vasanam")
	t.Setenv("SEARCH_RATE_LIMIT", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted negative SEARCH_RATE_LIMIT, want error")
	}
}
