package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort        = "8080"
	defaultDatabaseURL = "gigboard.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"
	defaultHoldDays    = 14
	defaultHoldDaysVar = "HOLD_DURATION_DAYS"
)

// Config is the engine's runtime configuration, read from the environment.
// HoldDuration is the default exclusivity window granted when a hold is
// approved without an explicit duration.
type Config struct {
	AppEnv       string
	Port         string
	DatabaseURL  string
	JWTSecret    string
	JWTTTL       time.Duration
	HoldDuration time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      strings.ToLower(envOr("APP_ENV", "dev")),
		Port:        envOr("PORT", defaultPort),
		DatabaseURL: envOr("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:   envOr("JWT_SECRET", defaultJWTSecret),
	}

	ttl, err := time.ParseDuration(envOr("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	days := defaultHoldDays
	if raw := strings.TrimSpace(os.Getenv(defaultHoldDaysVar)); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", defaultHoldDaysVar, raw)
		}
	}
	cfg.HoldDuration = time.Duration(days) * 24 * time.Hour

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
