package cmd

import (
	"os"

	"github.com/pkgmon/pkgmon/pkg/config"
	"github.com/pkgmon/pkgmon/pkg/errors"
)

// loadConfig resolves the working directory and loads configuration for a
// command run.
//
// It performs the following operations:
//   - Uses the --directory flag when set, the current directory otherwise
//   - Loads defaults, then merges the configuration file (--config, or
//     .pkgmon.yml in the working directory when present)
//   - Wraps failures as configuration errors so Execute exits with code 3
//
// Returns:
//   - *config.Config: The validated configuration
//   - error: A configuration error
func loadConfig() (*config.Config, error) {
	workDir := directoryFlag
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.NewConfigError("failed to determine working directory", err)
		}
		workDir = wd
	}

	cfg, err := config.LoadConfig(configFlag, workDir)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}
