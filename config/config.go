/*
Package config loads server configuration from the environment.

ENVIRONMENT VARIABLES:
  APP_ENV       local | production (default: local)
  HTTP_PORT     HTTP server port (default: 8080)
  DB_PATH       SQLite database path (default: schedule.db)
                "memory" selects the in-memory store instead
  CORS_ORIGINS  Comma-separated allowed origins
  LOG_LEVEL     zap level: debug, info, warn, error (default: info)
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config is the server configuration.
type Config struct {
	Env         string   `env:"APP_ENV" envDefault:"local"`
	HTTPPort    int      `env:"HTTP_PORT" envDefault:"8080"`
	DBPath      string   `env:"DB_PATH" envDefault:"schedule.db"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// UseMemoryStore reports whether the in-memory store was requested.
func (c Config) UseMemoryStore() bool {
	return c.DBPath == "memory"
}

// IsLocal reports whether the server runs in local development mode.
func (c Config) IsLocal() bool {
	return c.Env == "local"
}
