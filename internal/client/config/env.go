package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with the NEKO_* environment variables named in
// its struct tags. Unset variables leave the current value alone.
// Panics on malformed values, like the other stages.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
