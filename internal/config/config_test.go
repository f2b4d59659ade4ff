// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "SITE_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/site.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/site.db")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.CachePrefix != "site:" {
		t.Errorf("CachePrefix = %q, want %q", cfg.CachePrefix, "site:")
	}
	if cfg.CacheTTLDuration() != time.Hour {
		t.Errorf("CacheTTLDuration() = %v, want 1h", cfg.CacheTTLDuration())
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, want %q", cfg.AdminUsername, "admin")
	}
	if cfg.WriteConcurrency != 8 {
		t.Errorf("WriteConcurrency = %d, want 8", cfg.WriteConcurrency)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without SITE_REDIS_URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SITE_SESSION_SECRET", testSecret)
	setEnv(t, "SITE_DB_PATH", "/custom/path.db")
	setEnv(t, "SITE_SERVER_HOST", "0.0.0.0")
	setEnv(t, "SITE_SERVER_PORT", "3000")
	setEnv(t, "SITE_ENV", "production")
	setEnv(t, "SITE_ADMIN_PASSWORD", "Str0ng-admin-pass")
	setEnv(t, "SITE_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "SITE_WRITE_CONCURRENCY", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false with SITE_REDIS_URL set")
	}
	if cfg.WriteConcurrency != 2 {
		t.Errorf("WriteConcurrency = %d, want 2", cfg.WriteConcurrency)
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when SITE_SESSION_SECRET is not set")
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"short secret", map[string]string{"SITE_SESSION_SECRET": "short"}},
		{"31 byte secret", map[string]string{"SITE_SESSION_SECRET": "1234567890123456789012345678901"}},
		{"weak secret", map[string]string{"SITE_SESSION_SECRET": "change-me-to-32-byte-secret-key!"}},
		{"zero concurrency", map[string]string{"SITE_SESSION_SECRET": testSecret, "SITE_WRITE_CONCURRENCY": "0"}},
		{"production without admin password", map[string]string{
			"SITE_SESSION_SECRET": testSecret,
			"SITE_ENV":            "production",
		}},
		{"production with default admin password", map[string]string{
			"SITE_SESSION_SECRET": testSecret,
			"SITE_ENV":            "production",
			"SITE_ADMIN_PASSWORD": "ChangeMe",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				setEnv(t, k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("Load() should fail")
			}
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcdefghABCDEFGH1234567890123456", true},
		{"test-secret-key-32-bytes-long!!!", true},
		{"testsecretkey32byteslongtestsecr", false},
		{"TESTSECRETKEY-32-BYTES-LONG-TEST", true},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
