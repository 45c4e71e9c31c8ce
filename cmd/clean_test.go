package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRunsConfiguredCommands(t *testing.T) {
	dir := t.TempDir()
	cfgFile := "clean:\n  commands: echo cleaning {{manager}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pkgmon.yml"), []byte(cfgFile), 0o644))

	out, err := runCommand(t, "clean", "-d", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "cleaning npm")
	assert.Contains(t, out, "Cache cleaned")
}

func TestCleanFailingCommand(t *testing.T) {
	dir := t.TempDir()
	cfgFile := "clean:\n  commands: \"false\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pkgmon.yml"), []byte(cfgFile), 0o644))

	_, err := runCommand(t, "clean", "-d", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache clean failed")
}
