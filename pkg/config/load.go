// Package config handles configuration loading, validation, and merging for pkgmon.
// It supports a YAML-based configuration file (.pkgmon.yml) layered over the
// embedded defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgmon/pkgmon/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize bounds config reads to avoid loading an arbitrarily
// large file that was pointed at by mistake.
const maxConfigFileSize = 1 << 20 // 1MB

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .pkgmon.yml in the working directory.
// Either way the loaded file is merged over the embedded defaults, so a
// config file only needs to state what it changes.
//
// Parameters:
//   - configPath: path to the config file, or empty to use defaults
//   - workDir: working directory for the configuration
//
// Returns:
//   - *Config: the loaded and merged configuration
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		loaded, err := loadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg = mergeConfig(cfg, loaded)
	} else {
		localConfig := filepath.Join(workDir, ".pkgmon.yml")
		if _, err := os.Stat(localConfig); err == nil {
			verbose.Infof("Found local config: %s", localConfig)
			loaded, err := loadConfigFile(localConfig)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			cfg = mergeConfig(cfg, loaded)
		} else {
			verbose.Info("Using built-in default configuration")
		}
	}

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else if cfg.WorkingDir == "" {
		cfg.WorkingDir = "."
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile loads and parses a single YAML config file.
//
// It performs the following operations:
//   - Checks the file size against maxConfigFileSize before reading
//   - Reads the file content
//   - Unmarshals the YAML into a Config structure
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file is too large, not found, or has invalid YAML
func loadConfigFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	return &cfg, nil
}
