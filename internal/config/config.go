package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. DBPath selects the persistence
// backend: set, games survive restarts in SQLite; empty, they live in a
// process-local map.
type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
