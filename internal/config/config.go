// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// knownWeakPasswords are default admin passwords rejected in production.
var knownWeakPasswords = []string{
	"changeme",
	"admin",
	"password",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SITE_DB_PATH" envDefault:"./data/site.db"`
	SessionSecret string `env:"SITE_SESSION_SECRET,required"`
	ServerHost    string `env:"SITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SITE_ENV" envDefault:"development"`
	LogLevel      string `env:"SITE_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"SITE_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SITE_CACHE_PREFIX" envDefault:"site:"`   // Redis key prefix
	CacheTTL     int    `env:"SITE_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"SITE_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Admin account created on first start
	AdminUsername string `env:"SITE_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"SITE_ADMIN_PASSWORD"`

	// Seeding configuration
	DoSeed bool `env:"SITE_DO_SEED" envDefault:"false"` // Seed default translations and demo content

	// WriteConcurrency bounds the upserts of one save running at once.
	WriteConcurrency int `env:"SITE_WRITE_CONCURRENCY" envDefault:"8"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// The secret doubles as the 32-byte CSRF key.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SITE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("SITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return errors.New("SITE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if c.WriteConcurrency < 1 {
		return fmt.Errorf("SITE_WRITE_CONCURRENCY must be positive, got %d", c.WriteConcurrency)
	}

	if !c.IsDevelopment() {
		if c.AdminPassword == "" {
			return errors.New("SITE_ADMIN_PASSWORD is required outside development")
		}
		for _, weak := range knownWeakPasswords {
			if strings.EqualFold(c.AdminPassword, weak) {
				return errors.New("SITE_ADMIN_PASSWORD is a known default value and must not be used")
			}
		}
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
