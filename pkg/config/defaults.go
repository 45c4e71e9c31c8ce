package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// This unmarshals the embedded default.yml file into a Config structure.
// If unmarshaling fails, returns an empty config.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	return &Config{}
}

// GetDefaultConfig returns a fresh copy of the built-in defaults.
//
// Returns:
//   - *Config: the default configuration
func GetDefaultConfig() *Config {
	return loadDefaultConfig()
}

// DefaultConfigYAML returns the embedded default configuration as YAML.
//
// Useful for displaying or saving the default configuration.
//
// Returns:
//   - string: the default configuration as YAML
func DefaultConfigYAML() string {
	return defaultConfigYAML
}
