// Package config loads numcraft settings from NUMCRAFT_* environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/numcraft/internal/llm"
	"github.com/abhisek/numcraft/internal/logging"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Config is the process-wide configuration. Command-line flags override
// fields after Load.
type Config struct {
	DB        string `env:"NUMCRAFT_DB"`
	LogLevel  string `env:"NUMCRAFT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"NUMCRAFT_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"NUMCRAFT_LOG_FILE"`
	Seed      uint64 `env:"NUMCRAFT_SEED"` // 0 picks a random seed
	Catalog   string `env:"NUMCRAFT_CATALOG"`

	LLM llm.Config
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks logging settings and the LLM selection.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm config: %w", err)
	}
	return nil
}
