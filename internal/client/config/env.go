package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config for the environment layer. Empty defaults let
// "not set" be told apart from an explicit value, so the env layer only
// overrides what it actually carries.
type envConfig struct {
	ServerEndpointAddr string        `env:"SERVER_ADDR"`
	DatabaseDSN        string        `env:"DATABASE_DSN"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"-1s"`
}

// parseEnv overlays Config with BOOKREVIEW_* environment variables.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: "BOOKREVIEW_"}); err != nil {
		panic(err)
	}

	if ec.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = ec.ServerEndpointAddr
	}
	if ec.DatabaseDSN != "" {
		cfg.DatabaseDSN = ec.DatabaseDSN
	}
	if ec.RequestTimeout >= 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}
