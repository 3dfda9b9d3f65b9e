package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SessionBackend != BackendMemory {
		t.Errorf("Expected memory backend by default, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("Expected 30m session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("Expected 5m sweep interval, got %s", cfg.SweepInterval)
	}
	if cfg.BookingLeadDays != 7 {
		t.Errorf("Expected 7 booking lead days, got %d", cfg.BookingLeadDays)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.SessionBackend != BackendRedis {
		t.Errorf("Expected redis backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Errorf("Expected 15m TTL, got %s", cfg.SessionTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("Expected redis db 3, got %d", cfg.RedisDB)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"empty db path", func(c *Config) { c.CatalogDBPath = "" }, true},
		{"unknown backend", func(c *Config) { c.SessionBackend = "etcd" }, true},
		{"redis without addr", func(c *Config) {
			c.SessionBackend = BackendRedis
			c.RedisAddr = ""
		}, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"zero sweep interval", func(c *Config) { c.SweepInterval = 0 }, true},
		{"zero lead days", func(c *Config) { c.BookingLeadDays = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:            "8080",
				CatalogDBPath:   "./data/catalog.db",
				SessionBackend:  BackendMemory,
				RedisAddr:       "localhost:6379",
				SessionTTL:      30 * time.Minute,
				SweepInterval:   5 * time.Minute,
				BookingLeadDays: 7,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
