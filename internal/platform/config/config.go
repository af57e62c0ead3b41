// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, OTP store) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// OTP store backend identifiers. The backend is selected exactly once at
// startup; business logic never branches on the environment directly.
const (
	OTPStoreRedis  = "redis"
	OTPStoreMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Presensya API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// OTPStore selects the backing store for in-flight OTP sessions:
	// "redis" (durable across process restarts, multi-process safe) or
	// "memory" (single-process fallback, no external dependency).
	OTPStore string `env:"OTP_STORE" envDefault:"memory"`

	// Key-Value Cache (Redis). Required only when OTPStore is "redis".
	RedisURL string `env:"REDIS_URL"`

	// OTP policy
	OTPTTLMinutes  int `env:"OTP_TTL_MINUTES"  envDefault:"10"`
	OTPMaxAttempts int `env:"OTP_MAX_ATTEMPTS" envDefault:"3"`

	// Token signing. Access and refresh tokens share the secret and differ
	// only in TTL and intended use.
	JWTSecret       string        `env:"JWT_SECRET,required"`
	JWTIssuer       string        `env:"JWT_ISSUER"        envDefault:"presensya"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"24h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Cross-field checks that tags alone cannot express.
	if cfg.OTPStore != OTPStoreRedis && cfg.OTPStore != OTPStoreMemory {
		return nil, fmt.Errorf("config: OTP_STORE must be %q or %q, got %q", OTPStoreRedis, OTPStoreMemory, cfg.OTPStore)
	}
	if cfg.OTPStore == OTPStoreRedis && cfg.RedisURL == "" {
		return nil, fmt.Errorf("config: REDIS_URL is required when OTP_STORE=%s", OTPStoreRedis)
	}
	if cfg.OTPTTLMinutes < 1 {
		return nil, fmt.Errorf("config: OTP_TTL_MINUTES must be at least 1, got %d", cfg.OTPTTLMinutes)
	}
	if cfg.OTPMaxAttempts < 1 {
		return nil, fmt.Errorf("config: OTP_MAX_ATTEMPTS must be at least 1, got %d", cfg.OTPMaxAttempts)
	}

	return cfg, nil
}

// OTPTTL returns the OTP lifetime as a [time.Duration].
func (c *Config) OTPTTL() time.Duration {
	return time.Duration(c.OTPTTLMinutes) * time.Minute
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
