// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens.
	JWTSecret string

	// TokenDuration is how long issued tokens remain valid.
	TokenDuration time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "./data/divvy.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenDuration: getDuration("TOKEN_DURATION", 24*time.Hour),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-insecure-secret"
		slog.Warn("JWT_SECRET not set, using an insecure development secret")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", value)
		return fallback
	}
	return d
}
