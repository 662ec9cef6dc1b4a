package config

import (
	"fmt"
	"os"

	coreconfig "marketbot/core/config"
	coredatabase "marketbot/core/database"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config aggregates everything the bot needs to run. The core section is
// inlined so YAML stays flat: telegram, webhook, logging and friends sit at
// the top level next to mongo.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Mongo coredatabase.Config `yaml:"mongo"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads YAML configuration and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("config: mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("config: mongo.database is required")
	}
	return nil
}
