package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration, loadable from YAML.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	DataFile string          `yaml:"dataFile"` // CSV file to ingest at startup
	Indexes  []IndexSettings `yaml:"indexes"`  // Column indexes to build
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DefaultConfig returns a configuration with defaults applied and no indexes.
func DefaultConfig() Config {
	return Config{Server: ServerConfig{Port: 8080}}
}

// Load reads a YAML configuration file, applies defaults, and validates it.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	for i := range c.Indexes {
		c.Indexes[i].ApplyDefaults()
	}
}

// Validate checks the configuration for basic requirements.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}

	seen := make(map[string]bool)
	for i := range c.Indexes {
		if err := c.Indexes[i].Validate(); err != nil {
			return err
		}
		if seen[c.Indexes[i].Name] {
			return fmt.Errorf("duplicate index name '%s'", c.Indexes[i].Name)
		}
		seen[c.Indexes[i].Name] = true
	}
	return nil
}
