package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment (with a
// .env file loaded first if present). Command-line flags override these.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `env:"BAND_DB" envDefault:"band.db"`
	// LogPath, when set, mirrors all log output to this file.
	LogPath string `env:"BAND_LOG"`
}

// Load reads configuration from .env and the environment.
func Load() (Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
