package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the variables that override file values. Unset
// variables leave their pointer nil.
type envOverrides struct {
	Title      *string        `env:"POKEDEX_TITLE"`
	Port       *int           `env:"POKEDEX_PORT"`
	APIURL     *string        `env:"POKEDEX_API_URL"`
	APITimeout *time.Duration `env:"POKEDEX_API_TIMEOUT"`
}

// applyEnv overlays POKEDEX_ environment variables onto cfg.
func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.Title != nil && *o.Title != "" {
		cfg.Title = *o.Title
	}
	if o.Port != nil {
		cfg.Port = *o.Port
	}
	if o.APIURL != nil && *o.APIURL != "" {
		cfg.API.URL = *o.APIURL
	}
	if o.APITimeout != nil {
		cfg.API.Timeout = Duration(*o.APITimeout)
	}
	return nil
}
