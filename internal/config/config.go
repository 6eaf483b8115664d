// Package config loads the handful of construction parameters the matching
// core and its demo gateway need: how many resting orders to pre-size the
// arena for, the inclusive price ceiling, and a log level. None of it is
// consulted again after construction.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// EngineConfig holds the matching core's construction parameters.
type EngineConfig struct {
	Capacity int    `mapstructure:"capacity"`
	MaxPrice uint64 `mapstructure:"max_price"`
	LogLevel string `mapstructure:"log_level"`
}

func defaults() EngineConfig {
	return EngineConfig{
		Capacity: 1 << 20,
		MaxPrice: 1 << 20,
		LogLevel: "info",
	}
}

// Load reads an EngineConfig from the given file path (if non-empty) and
// from MATCHCORE_-prefixed environment variables, falling back to defaults
// for anything left unset. A missing path is not an error — it just means
// "use defaults and env overrides".
func Load(path string) (EngineConfig, error) {
	cfg := defaults()

	v := viper.New()
	v.SetEnvPrefix("MATCHCORE")
	v.AutomaticEnv()
	v.SetDefault("capacity", cfg.Capacity)
	v.SetDefault("max_price", cfg.MaxPrice)
	v.SetDefault("log_level", cfg.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Capacity <= 0 {
		return cfg, fmt.Errorf("config: capacity must be positive, got %d", cfg.Capacity)
	}
	if cfg.MaxPrice == 0 {
		return cfg, fmt.Errorf("config: max_price must be positive, got %d", cfg.MaxPrice)
	}
	return cfg, nil
}
