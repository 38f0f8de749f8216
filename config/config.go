/*
Package config loads server configuration from the environment.

A .env file in the working directory is loaded first (missing is fine),
then each setting falls back to a default. Command-line flags in
cmd/server/main.go may override port and database path on top of this.

VARIABLES:
  PORT             HTTP server port            (default: 8080)
  DB_PATH          SQLite database path        (default: staffdesk.db)
  CORS_ORIGINS     Comma-separated origins     (default: localhost dev ports)
  LOG_LEVEL        debug|info|warn|error       (default: info)
  SEED_SAMPLE_DATA Seed demo data on empty DB  (default: false)
  AUTO_RESET       Daily attendance auto-reset (default: true)
*/
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	Port           int
	DBPath         string
	CORSOrigins    []string
	LogLevel       slog.Level
	SeedSampleData bool
	AutoReset      bool
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnvInt("PORT", 8080),
		DBPath:         getEnv("DB_PATH", "staffdesk.db"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", false),
		AutoReset:      getEnvBool("AUTO_RESET", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
