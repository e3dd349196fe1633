package rest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted when a config file omits a value.
const (
	EnvHost   = "MATGRAPH_HOST"
	EnvAPIKey = "MATGRAPH_API_KEY"
)

// Config holds connection settings for a platform session.
type Config struct {
	// Host is the platform base URL, e.g. "https://api.matgraph.io".
	Host string `yaml:"host"`

	// APIKey is the long-lived key exchanged for short-lived access
	// tokens.
	APIKey string `yaml:"api_key"`

	// Timeout bounds each individual HTTP request. Zero means the
	// default of 60 seconds. In YAML this is a duration string such
	// as "30s".
	Timeout time.Duration `yaml:"-"`
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.APIKey == "" {
		return errors.New("api key is required")
	}
	return nil
}

// LoadConfig reads a YAML config file and fills any missing host or
// api key from the environment. The file may be absent entirely, in
// which case the environment alone must supply the values.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		// Timeouts are written as Go duration strings ("30s", "2m").
		var file struct {
			Host    string `yaml:"host"`
			APIKey  string `yaml:"api_key"`
			Timeout string `yaml:"timeout"`
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
		cfg.Host = file.Host
		cfg.APIKey = file.APIKey
		if file.Timeout != "" {
			d, err := time.ParseDuration(file.Timeout)
			if err != nil {
				return Config{}, fmt.Errorf("parsing config timeout: %w", err)
			}
			cfg.Timeout = d
		}
	}
	if cfg.Host == "" {
		cfg.Host = os.Getenv(EnvHost)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvAPIKey)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
