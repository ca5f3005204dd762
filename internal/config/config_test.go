package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Make sure ambient env doesn't leak into the test.
	for _, key := range []string{"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_LIFETIME", "REDIS_ADDR", "PLAN_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "./data/splitpay.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.TokenLifetime != 24*time.Hour {
		t.Errorf("TokenLifetime = %v, want 24h", cfg.TokenLifetime)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret-s3cret")
	t.Setenv("TOKEN_LIFETIME", "2h")
	t.Setenv("PLAN_TTL", "not-a-duration")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.JWTSecret != "s3cret-s3cret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.TokenLifetime != 2*time.Hour {
		t.Errorf("TokenLifetime = %v, want 2h", cfg.TokenLifetime)
	}
	if cfg.PlanTTL != 5*time.Minute {
		t.Errorf("PlanTTL = %v, want fallback 5m on parse failure", cfg.PlanTTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"zero token lifetime", func(c *Config) { c.TokenLifetime = 0 }, "TOKEN_LIFETIME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:          "8080",
				DBPath:        "./data/test.db",
				JWTSecret:     "super-secret-key",
				TokenLifetime: time.Hour,
				LogLevel:      "info",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
