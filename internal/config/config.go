package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration for the command line tools.
type Config struct {
	Browser        string   `yaml:"browser"`
	Headless       bool     `yaml:"headless"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Account        string   `yaml:"account"`
	Symbols        []string `yaml:"symbols"`
	Debug          bool     `yaml:"debug"`
}

// Load reads and validates a yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
	}

	cfg := &Config{
		Browser:        "firefox",
		TimeoutSeconds: 10,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Browser {
	case "firefox", "chromium", "webkit":
	default:
		return fmt.Errorf("unknown browser %q", c.Browser)
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
