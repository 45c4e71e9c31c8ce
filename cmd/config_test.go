package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout is a test helper that captures stdout during function execution.
//
// Parameters:
//   - t: The testing instance
//   - fn: The function to execute while capturing stdout
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}

// captureStderr is a test helper that captures stderr during function execution.
//
// Parameters:
//   - t: The testing instance
//   - fn: The function to execute while capturing stderr
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	fn()

	_ = w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}

// runCommand executes the root command with the given arguments, capturing
// stdout. Command flags and arguments are restored afterwards.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldDirectory := directoryFlag
	oldConfig := configFlag
	oldSkip := skipBuildChecksFlag
	defer func() {
		directoryFlag = oldDirectory
		configFlag = oldConfig
		skipBuildChecksFlag = oldSkip
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs(append(args, "--skip-build-checks"))

	var err error
	out := captureStdout(t, func() {
		err = ExecuteTest()
	})
	return out, err
}

func TestConfigShowDefaults(t *testing.T) {
	oldFlag := configShowDefaultsFlag
	defer func() { configShowDefaultsFlag = oldFlag }()

	out, err := runCommand(t, "config", "--show-defaults")
	require.NoError(t, err)

	assert.Contains(t, out, "Default configuration:")
	assert.Contains(t, out, "name: npm")
	assert.Contains(t, out, "dependency_dir: node_modules")
}

func TestConfigShowEffective(t *testing.T) {
	oldShow := configShowEffectiveFlag
	defer func() { configShowEffectiveFlag = oldShow }()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pkgmon.yml"), []byte("manager:\n  name: yarn\n"), 0o644))

	out, err := runCommand(t, "config", "--show-effective", "-d", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Manager: yarn")
	assert.Contains(t, out, "Working Directory: "+dir)
}

func TestConfigInit(t *testing.T) {
	oldInit := configInitFlag
	defer func() { configInitFlag = oldInit }()

	dir := t.TempDir()

	out, err := runCommand(t, "config", "--init", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	data, err := os.ReadFile(filepath.Join(dir, ".pkgmon.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "manager:")

	_, err = runCommand(t, "config", "--init", "-d", dir)
	assert.ErrorContains(t, err, "already exists")
}
