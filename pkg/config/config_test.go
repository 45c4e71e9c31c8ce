package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsComplete(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "npm", cfg.Manager.Name)
	assert.Equal(t, "package.json", cfg.Manager.Manifest)
	assert.Equal(t, "package-lock.json", cfg.Manager.LockFile)
	assert.Equal(t, "node_modules", cfg.Manager.DependencyDir)

	assert.NotEmpty(t, cfg.Discovery.Roots)
	assert.Equal(t, 3, cfg.Discovery.MaxDepth)
	assert.Contains(t, cfg.Discovery.Exclude, "node_modules")
	assert.Equal(t, 5, cfg.Discovery.BatchSize)

	assert.NotEmpty(t, cfg.Trim.Patterns)
	assert.NotEmpty(t, cfg.Clean.Commands)

	require.NoError(t, Validate(cfg))
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig("", dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.WorkingDir)
	assert.Equal(t, "npm", cfg.Manager.Name)
}

func TestLoadConfigPicksUpLocalFile(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".pkgmon.yml")
	require.NoError(t, os.WriteFile(local, []byte("manager:\n  name: pnpm\n"), 0o644))

	cfg, err := LoadConfig("", dir)
	require.NoError(t, err)

	assert.Equal(t, "pnpm", cfg.Manager.Name)
	assert.Equal(t, "package.json", cfg.Manager.Manifest, "unset fields keep defaults")
}

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("tracker:\n  tick_ms: 50\n"), 0o644))

	cfg, err := LoadConfig(path, dir)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.GetTick())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"), t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("manager: [broken"), 0o644))

	_, err := LoadConfig(path, dir)
	assert.ErrorContains(t, err, "invalid YAML")
}

func TestMergeConfigOverridesOnlyNonZeroFields(t *testing.T) {
	base := GetDefaultConfig()
	override := &Config{}
	override.Manager.Name = "yarn"
	override.Discovery.Roots = []string{"/srv/projects"}
	override.Tracker.Estimates.LargeMs = 12000

	merged := mergeConfig(base, override)

	assert.Equal(t, "yarn", merged.Manager.Name)
	assert.Equal(t, "package.json", merged.Manager.Manifest)
	assert.Equal(t, []string{"/srv/projects"}, merged.Discovery.Roots)
	assert.Equal(t, base.Discovery.MaxDepth, merged.Discovery.MaxDepth)
	assert.Equal(t, 12000, merged.Tracker.Estimates.LargeMs)
	assert.Equal(t, base.Tracker.Estimates.MediumMs, merged.Tracker.Estimates.MediumMs)
}

func TestValidateRejectsMissingManagerFiles(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Manager.Manifest = ""
	cfg.Manager.LockFile = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "manager.manifest")
	assert.ErrorContains(t, err, "manager.lock_file")
}

func TestValidateRejectsNegativeIntervals(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Discovery.MaxDepth = -1
	cfg.Tracker.TickMs = -5

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "discovery.max_depth")
	assert.ErrorContains(t, err, "tracker.tick_ms")
}

func TestValidateNilConfig(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestDurationGetterDefaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, time.Second, cfg.GetProbeTimeout())
	assert.Equal(t, 2*time.Second, cfg.GetQuickDelay())
	assert.Equal(t, 5*time.Minute, cfg.GetDiscoveryInterval())
	assert.Equal(t, 30*time.Second, cfg.GetRederiveInterval())
	assert.Equal(t, 200*time.Millisecond, cfg.GetTick())
	assert.Equal(t, 500*time.Millisecond, cfg.GetPollDelay())
	assert.Equal(t, 300*time.Millisecond, cfg.GetPollInterval())
	assert.Equal(t, time.Second, cfg.GetLinger())
	assert.Equal(t, 5*time.Minute, cfg.GetAbandonAfter())
	assert.Equal(t, 120, cfg.GetCleanTimeoutSeconds())
}

func TestAbandonAfterDisabledByNegativeValue(t *testing.T) {
	cfg := &Config{}
	cfg.Tracker.AbandonAfterMinutes = -1

	assert.Equal(t, time.Duration(0), cfg.GetAbandonAfter())
}
