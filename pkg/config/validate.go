package config

import (
	"fmt"
	"strings"
)

// Validate checks a configuration for values the monitor cannot run with.
//
// It performs the following operations:
//   - Verifies the package manager file names are set
//   - Verifies discovery bounds (depth, batch size) are positive
//   - Verifies tracker intervals are positive
//   - Collects all problems into a single error with a hint
//
// Parameters:
//   - cfg: The configuration to validate
//
// Returns:
//   - error: A combined validation error, or nil when the config is usable
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is required")
	}

	var problems []string

	if cfg.Manager.Manifest == "" {
		problems = append(problems, "manager.manifest must be set (e.g., package.json)")
	}
	if cfg.Manager.DependencyDir == "" {
		problems = append(problems, "manager.dependency_dir must be set (e.g., node_modules)")
	}
	if cfg.Manager.LockFile == "" {
		problems = append(problems, "manager.lock_file must be set (e.g., package-lock.json)")
	}

	if cfg.Discovery.MaxDepth < 0 {
		problems = append(problems, "discovery.max_depth must not be negative")
	}
	if cfg.Discovery.BatchSize < 0 {
		problems = append(problems, "discovery.batch_size must not be negative")
	}
	if cfg.Discovery.ProbeTimeoutMs < 0 {
		problems = append(problems, "discovery.probe_timeout_ms must not be negative")
	}

	if cfg.Tracker.TickMs < 0 {
		problems = append(problems, "tracker.tick_ms must not be negative")
	}
	if cfg.Tracker.PollIntervalMs < 0 {
		problems = append(problems, "tracker.poll_interval_ms must not be negative")
	}
	if cfg.Tracker.Estimates.DefaultMs < 0 {
		problems = append(problems, "tracker.estimates.default_ms must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("invalid configuration:\n  - %s\n\n💡 See docs/configuration.md for the schema",
		strings.Join(problems, "\n  - "))
}
