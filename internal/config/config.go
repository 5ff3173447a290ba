// Package config reads runtime settings from PHASEGUIDE_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/alexanderramin/phaseguide/internal/unlock"
)

type Config struct {
	// DBPath is the SQLite file. Empty means ~/.phaseguide/phaseguide.db.
	DBPath     string `env:"PHASEGUIDE_DB"`
	StorageKey string `env:"PHASEGUIDE_STORAGE_KEY" envDefault:"projectProgress"`
	// PermissiveCompletion allows completing modules that are still locked.
	PermissiveCompletion bool       `env:"PHASEGUIDE_PERMISSIVE_COMPLETION" envDefault:"false"`
	LogUseCases          bool       `env:"PHASEGUIDE_LOG_USE_CASES"         envDefault:"false"`
	LogLevel             slog.Level `env:"PHASEGUIDE_LOG_LEVEL"            envDefault:"info"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config and resolves the default database path.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".phaseguide", "phaseguide.db")
	}
	return cfg, nil
}

// Rules returns the unlock rules selected by PermissiveCompletion.
func (c Config) Rules() unlock.Rules {
	if c.PermissiveCompletion {
		return unlock.PermissiveRules()
	}
	return unlock.DefaultRules()
}
