// Package config loads the connection settings a host application feeds its
// manager implementation. The library itself never dials anything; these
// values are handed to whichever manager the host injects.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Manager ManagerConfig `yaml:"manager"`
}

// ManagerConfig holds the settings for reaching a Deep Security Manager.
type ManagerConfig struct {
	Address     string        `yaml:"address"`
	Port        int           `yaml:"port"`
	Tenant      string        `yaml:"tenant"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	VerifyTLS   bool          `yaml:"verify_tls"`
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Manager: ManagerConfig{
			Port:        4119,
			VerifyTLS:   true,
			CallTimeout: 30 * time.Second,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Manager.Address == "" {
		return fmt.Errorf("manager address is empty")
	}
	if c.Manager.Port <= 0 || c.Manager.Port > 65535 {
		return fmt.Errorf("manager port %d out of range", c.Manager.Port)
	}
	if c.Manager.CallTimeout <= 0 {
		c.Manager.CallTimeout = 30 * time.Second
	}
	return nil
}
