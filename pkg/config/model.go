package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// WorkingDir is the bootstrap project directory. It is not persisted to
	// YAML by convention; CLI flags and defaults fill it in.
	WorkingDir string `yaml:"working_dir,omitempty"`

	Manager   ManagerCfg   `yaml:"manager,omitempty"`
	Discovery DiscoveryCfg `yaml:"discovery,omitempty"`
	Tracker   TrackerCfg   `yaml:"tracker,omitempty"`
	Trim      TrimCfg      `yaml:"trim,omitempty"`
	Clean     CleanCfg     `yaml:"clean,omitempty"`
}

// ManagerCfg describes the package manager whose workspace is monitored.
//
// Fields:
//   - Name: Binary name of the package manager (e.g., "npm")
//   - Manifest: Manifest file name (e.g., "package.json")
//   - LockFile: Lock file name (e.g., "package-lock.json")
//   - DependencyDir: Directory holding installed packages (e.g., "node_modules")
//   - GlobalStore: Global install location; empty means auto-detect per platform
type ManagerCfg struct {
	Name          string `yaml:"name,omitempty"`
	Manifest      string `yaml:"manifest,omitempty"`
	LockFile      string `yaml:"lock_file,omitempty"`
	DependencyDir string `yaml:"dependency_dir,omitempty"`
	GlobalStore   string `yaml:"global_store,omitempty"`
}

// DiscoveryCfg controls project discovery across root candidates.
//
// Fields:
//   - Roots: Root candidate directories; "~" expands to the home directory
//   - MaxDepth: Maximum directory depth below a root to scan for manifests
//   - Exclude: Directory names never descended into during a scan
//   - ProbeTimeoutMs: Per-root accessibility probe budget in milliseconds
//   - BatchSize: Number of projects registered per batch when opening watches
//   - QuickDelayMs: Delay before the full scan in quick mode, in milliseconds
//   - IntervalMinutes: Periodic rediscovery interval in minutes
//   - RederiveSeconds: Periodic top-level dependency re-derivation interval
type DiscoveryCfg struct {
	Roots           []string `yaml:"roots,omitempty"`
	MaxDepth        int      `yaml:"max_depth,omitempty"`
	Exclude         []string `yaml:"exclude,omitempty"`
	ProbeTimeoutMs  int      `yaml:"probe_timeout_ms,omitempty"`
	BatchSize       int      `yaml:"batch_size,omitempty"`
	QuickDelayMs    int      `yaml:"quick_delay_ms,omitempty"`
	IntervalMinutes int      `yaml:"interval_minutes,omitempty"`
	RederiveSeconds int      `yaml:"rederive_seconds,omitempty"`
}

// TrackerCfg controls the installation progress state machine.
//
// Fields:
//   - TickMs: Estimate tick interval in milliseconds
//   - PollDelayMs: Delay before the first completion poll, in milliseconds
//   - PollIntervalMs: Interval between completion polls, in milliseconds
//   - LingerMs: How long a completed indicator stays visible, in milliseconds
//   - AbandonAfterMinutes: Completion-poll timeout; 0 disables abandonment
//   - Estimates: Size heuristic for estimated installation durations
type TrackerCfg struct {
	TickMs              int         `yaml:"tick_ms,omitempty"`
	PollDelayMs         int         `yaml:"poll_delay_ms,omitempty"`
	PollIntervalMs      int         `yaml:"poll_interval_ms,omitempty"`
	LingerMs            int         `yaml:"linger_ms,omitempty"`
	AbandonAfterMinutes int         `yaml:"abandon_after_minutes,omitempty"`
	Estimates           EstimateCfg `yaml:"estimates,omitempty"`
}

// EstimateCfg is the coarse size heuristic keyed on package-name fragments.
//
// The estimate is a proxy for install duration, not a measurement; progress
// derived from it is capped below completion until the manifest appears.
//
// Fields:
//   - LargeMs: Estimated duration for packages matching a large fragment
//   - MediumMs: Estimated duration for packages matching a medium fragment
//   - DefaultMs: Estimated duration for everything else
//   - LargeFragments: Substrings identifying known large packages
//   - MediumFragments: Substrings identifying known medium packages
type EstimateCfg struct {
	LargeMs         int      `yaml:"large_ms,omitempty"`
	MediumMs        int      `yaml:"medium_ms,omitempty"`
	DefaultMs       int      `yaml:"default_ms,omitempty"`
	LargeFragments  []string `yaml:"large_fragments,omitempty"`
	MediumFragments []string `yaml:"medium_fragments,omitempty"`
}

// TrimCfg controls the trim command's junk-file matching.
//
// Fields:
//   - Patterns: Glob patterns (relative to the dependency directory) to delete
//   - Exclude: Glob patterns protected from deletion
type TrimCfg struct {
	Patterns []string `yaml:"patterns,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
}

// CleanCfg controls the clean command's cache-clearing collaborator.
//
// Fields:
//   - Commands: Shell command line(s) executed to clear the cache
//   - TimeoutSeconds: Maximum execution time; 0 means no timeout
type CleanCfg struct {
	Commands       string `yaml:"commands,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// GetProbeTimeout returns the root accessibility probe budget as a duration.
//
// Returns:
//   - time.Duration: Configured probe timeout, or 1s when unset
func (c *Config) GetProbeTimeout() time.Duration {
	if c.Discovery.ProbeTimeoutMs > 0 {
		return time.Duration(c.Discovery.ProbeTimeoutMs) * time.Millisecond
	}
	return time.Second
}

// GetQuickDelay returns the quick-mode full-scan delay as a duration.
//
// Returns:
//   - time.Duration: Configured quick delay, or 2s when unset
func (c *Config) GetQuickDelay() time.Duration {
	if c.Discovery.QuickDelayMs > 0 {
		return time.Duration(c.Discovery.QuickDelayMs) * time.Millisecond
	}
	return 2 * time.Second
}

// GetDiscoveryInterval returns the periodic rediscovery interval as a duration.
//
// Returns:
//   - time.Duration: Configured interval, or 5m when unset
func (c *Config) GetDiscoveryInterval() time.Duration {
	if c.Discovery.IntervalMinutes > 0 {
		return time.Duration(c.Discovery.IntervalMinutes) * time.Minute
	}
	return 5 * time.Minute
}

// GetRederiveInterval returns the top-level re-derivation interval as a duration.
//
// Returns:
//   - time.Duration: Configured interval, or 30s when unset
func (c *Config) GetRederiveInterval() time.Duration {
	if c.Discovery.RederiveSeconds > 0 {
		return time.Duration(c.Discovery.RederiveSeconds) * time.Second
	}
	return 30 * time.Second
}

// GetTick returns the estimate tick interval as a duration.
//
// Returns:
//   - time.Duration: Configured tick, or 200ms when unset
func (c *Config) GetTick() time.Duration {
	if c.Tracker.TickMs > 0 {
		return time.Duration(c.Tracker.TickMs) * time.Millisecond
	}
	return 200 * time.Millisecond
}

// GetPollDelay returns the delay before the first completion poll.
//
// Returns:
//   - time.Duration: Configured delay, or 500ms when unset
func (c *Config) GetPollDelay() time.Duration {
	if c.Tracker.PollDelayMs > 0 {
		return time.Duration(c.Tracker.PollDelayMs) * time.Millisecond
	}
	return 500 * time.Millisecond
}

// GetPollInterval returns the interval between completion polls.
//
// Returns:
//   - time.Duration: Configured interval, or 300ms when unset
func (c *Config) GetPollInterval() time.Duration {
	if c.Tracker.PollIntervalMs > 0 {
		return time.Duration(c.Tracker.PollIntervalMs) * time.Millisecond
	}
	return 300 * time.Millisecond
}

// GetLinger returns how long a completed indicator stays visible.
//
// Returns:
//   - time.Duration: Configured linger, or 1s when unset
func (c *Config) GetLinger() time.Duration {
	if c.Tracker.LingerMs > 0 {
		return time.Duration(c.Tracker.LingerMs) * time.Millisecond
	}
	return time.Second
}

// GetAbandonAfter returns the completion-poll abandonment timeout.
//
// Returns:
//   - time.Duration: Configured timeout, or 5m when unset; 0 only when the
//     config explicitly sets abandon_after_minutes to a negative value
func (c *Config) GetAbandonAfter() time.Duration {
	if c.Tracker.AbandonAfterMinutes > 0 {
		return time.Duration(c.Tracker.AbandonAfterMinutes) * time.Minute
	}
	if c.Tracker.AbandonAfterMinutes < 0 {
		return 0
	}
	return 5 * time.Minute
}

// GetCleanTimeoutSeconds returns the clean command timeout in seconds.
//
// Returns:
//   - int: Configured timeout, or 120 when unset
func (c *Config) GetCleanTimeoutSeconds() int {
	if c.Clean.TimeoutSeconds > 0 {
		return c.Clean.TimeoutSeconds
	}
	return 120
}
