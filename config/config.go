// Package config loads client-core settings for embedding applications.
// Value sources, in descending priority:
//  1. explicit path passed to LoadPath;
//  2. path in the CONFIG_PATH environment variable;
//  3. environment variables alone (cleanenv defaults apply).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root client configuration.
type Config struct {
	BaseURL      string        `yaml:"base_url" env:"CURAFLOW_BASE_URL" env-default:"https://api.curaflow.app/api/v1"`
	KeystorePath string        `yaml:"keystore_path" env:"CURAFLOW_KEYSTORE_PATH" env-default:"curaflow-keystore.db"`
	Timeouts     TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig bounds the client's waiting behavior.
type TimeoutConfig struct {
	Request     time.Duration `yaml:"request" env:"CURAFLOW_REQUEST_TIMEOUT" env-default:"30s"`
	HealthProbe time.Duration `yaml:"health_probe" env:"CURAFLOW_HEALTH_PROBE_WINDOW" env-default:"2s"`
}

// Load resolves the config path (CONFIG_PATH, then env-only) and loads it.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadPath(path)
	}
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

// LoadPath loads configuration from a yaml file, with environment variables
// overriding file values.
func LoadPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return &cfg, nil
}
