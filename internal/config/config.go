// Package config loads server configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the server configuration.
type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	DBPath string `envconfig:"DB_PATH" default:"data/channels.db"`
	// JWT_SECRET signs and verifies the bearer tokens presented on the
	// WebSocket handshake and the REST API.
	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	// ALLOWED_ORIGIN restricts WebSocket upgrades; "*" accepts any origin.
	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"*"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
