// Package config reads the backend configuration from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration for the backend.
type Config struct {
	// DBPath is the path of the SQLite database file.
	DBPath string

	// TokenSecret signs session tokens. Must be set in production.
	TokenSecret string

	// CORSAllowOrigins enables CORS for the listed origins when non-empty.
	CORSAllowOrigins []string

	// Addr is the listen address for the HTTP server.
	Addr string
}

// Load reads the configuration from the environment. A .env file is
// loaded first when present so that development setups work without
// exported variables.
func Load() Config {
	// A missing .env file is fine, the environment takes precedence anyway
	_ = godotenv.Load()

	config := Config{
		DBPath:      getEnv("DB_PATH", "data/pocketledger.db"),
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		Addr:        ":" + getEnv("PORT", "8080"),
	}

	if allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		config.CORSAllowOrigins = strings.Fields(allowOrigins)
	}

	if config.TokenSecret == "" {
		log.Warn().Msg("TOKEN_SECRET is not set, using an insecure default. Do not run this configuration in production")
		config.TokenSecret = "insecure-development-secret"
	}

	return config
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
