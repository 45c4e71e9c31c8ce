package config

// mergeConfig layers an override config over a base config.
//
// Scalars and slices in the override replace the base values only when
// non-zero; the base (typically the embedded defaults) fills everything else.
// Slices replace wholesale rather than appending, so a config file can
// narrow the default exclude list.
//
// Parameters:
//   - base: The base configuration (not modified)
//   - override: The configuration whose non-zero fields win
//
// Returns:
//   - *Config: A new merged configuration
func mergeConfig(base, override *Config) *Config {
	merged := *base

	if override.WorkingDir != "" {
		merged.WorkingDir = override.WorkingDir
	}

	merged.Manager = mergeManager(base.Manager, override.Manager)
	merged.Discovery = mergeDiscovery(base.Discovery, override.Discovery)
	merged.Tracker = mergeTracker(base.Tracker, override.Tracker)

	if len(override.Trim.Patterns) > 0 {
		merged.Trim.Patterns = override.Trim.Patterns
	}
	if len(override.Trim.Exclude) > 0 {
		merged.Trim.Exclude = override.Trim.Exclude
	}

	if override.Clean.Commands != "" {
		merged.Clean.Commands = override.Clean.Commands
	}
	if override.Clean.TimeoutSeconds != 0 {
		merged.Clean.TimeoutSeconds = override.Clean.TimeoutSeconds
	}

	return &merged
}

// mergeManager merges package manager settings field by field.
func mergeManager(base, override ManagerCfg) ManagerCfg {
	merged := base
	if override.Name != "" {
		merged.Name = override.Name
	}
	if override.Manifest != "" {
		merged.Manifest = override.Manifest
	}
	if override.LockFile != "" {
		merged.LockFile = override.LockFile
	}
	if override.DependencyDir != "" {
		merged.DependencyDir = override.DependencyDir
	}
	if override.GlobalStore != "" {
		merged.GlobalStore = override.GlobalStore
	}
	return merged
}

// mergeDiscovery merges discovery settings field by field.
func mergeDiscovery(base, override DiscoveryCfg) DiscoveryCfg {
	merged := base
	if len(override.Roots) > 0 {
		merged.Roots = override.Roots
	}
	if override.MaxDepth != 0 {
		merged.MaxDepth = override.MaxDepth
	}
	if len(override.Exclude) > 0 {
		merged.Exclude = override.Exclude
	}
	if override.ProbeTimeoutMs != 0 {
		merged.ProbeTimeoutMs = override.ProbeTimeoutMs
	}
	if override.BatchSize != 0 {
		merged.BatchSize = override.BatchSize
	}
	if override.QuickDelayMs != 0 {
		merged.QuickDelayMs = override.QuickDelayMs
	}
	if override.IntervalMinutes != 0 {
		merged.IntervalMinutes = override.IntervalMinutes
	}
	if override.RederiveSeconds != 0 {
		merged.RederiveSeconds = override.RederiveSeconds
	}
	return merged
}

// mergeTracker merges tracker settings field by field.
func mergeTracker(base, override TrackerCfg) TrackerCfg {
	merged := base
	if override.TickMs != 0 {
		merged.TickMs = override.TickMs
	}
	if override.PollDelayMs != 0 {
		merged.PollDelayMs = override.PollDelayMs
	}
	if override.PollIntervalMs != 0 {
		merged.PollIntervalMs = override.PollIntervalMs
	}
	if override.LingerMs != 0 {
		merged.LingerMs = override.LingerMs
	}
	if override.AbandonAfterMinutes != 0 {
		merged.AbandonAfterMinutes = override.AbandonAfterMinutes
	}
	return mergeTrackerEstimates(merged, override)
}

// mergeTrackerEstimates merges the estimate heuristic settings.
func mergeTrackerEstimates(merged, override TrackerCfg) TrackerCfg {
	if override.Estimates.LargeMs != 0 {
		merged.Estimates.LargeMs = override.Estimates.LargeMs
	}
	if override.Estimates.MediumMs != 0 {
		merged.Estimates.MediumMs = override.Estimates.MediumMs
	}
	if override.Estimates.DefaultMs != 0 {
		merged.Estimates.DefaultMs = override.Estimates.DefaultMs
	}
	if len(override.Estimates.LargeFragments) > 0 {
		merged.Estimates.LargeFragments = override.Estimates.LargeFragments
	}
	if len(override.Estimates.MediumFragments) > 0 {
		merged.Estimates.MediumFragments = override.Estimates.MediumFragments
	}
	return merged
}
