package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkgmon/pkgmon/pkg/errors"
	"github.com/pkgmon/pkgmon/pkg/verbose"
)

// TestPersistentPreRunVerbose tests the behavior of PersistentPreRun with verbose flag.
//
// It verifies:
//   - Verbose mode is enabled when verboseFlag is set to true
func TestPersistentPreRunVerbose(t *testing.T) {
	oldVerbose := verboseFlag
	oldSkip := skipBuildChecksFlag
	defer func() {
		verboseFlag = oldVerbose
		skipBuildChecksFlag = oldSkip
		verbose.Disable()
	}()

	verboseFlag = true
	skipBuildChecksFlag = true

	rootCmd.PersistentPreRun(rootCmd, []string{})

	assert.True(t, verbose.IsEnabled())
}

// TestPersistentPreRunTrace tests the behavior of PersistentPreRun with trace flag.
//
// It verifies:
//   - Trace level wins over the verbose flag when both are set
func TestPersistentPreRunTrace(t *testing.T) {
	oldVerbose := verboseFlag
	oldTrace := traceFlag
	oldSkip := skipBuildChecksFlag
	defer func() {
		verboseFlag = oldVerbose
		traceFlag = oldTrace
		skipBuildChecksFlag = oldSkip
		verbose.Disable()
	}()

	verboseFlag = true
	traceFlag = true
	skipBuildChecksFlag = true

	rootCmd.PersistentPreRun(rootCmd, []string{})

	assert.True(t, verbose.IsEnabled())
}

// TestPersistentPreRunBuildWarnings tests the behavior of PersistentPreRun with build warnings.
//
// It verifies:
//   - Build warnings are shown when skipBuildChecksFlag is false
//   - Build warnings are skipped when skipBuildChecksFlag is true
func TestPersistentPreRunBuildWarnings(t *testing.T) {
	oldVersion := Version
	oldBuildOS := BuildOS
	oldBuildArch := BuildArch
	oldSkip := skipBuildChecksFlag
	defer func() {
		Version = oldVersion
		BuildOS = oldBuildOS
		BuildArch = oldBuildArch
		skipBuildChecksFlag = oldSkip
	}()

	t.Run("shows warnings when not skipped", func(t *testing.T) {
		Version = "dev"
		BuildOS = ""
		BuildArch = ""
		skipBuildChecksFlag = false

		output := captureStderr(t, func() {
			rootCmd.PersistentPreRun(rootCmd, []string{})
		})

		assert.Contains(t, output, "Development build")
	})

	t.Run("skips warnings when flag set", func(t *testing.T) {
		Version = "dev"
		BuildOS = ""
		BuildArch = ""
		skipBuildChecksFlag = true

		output := captureStderr(t, func() {
			rootCmd.PersistentPreRun(rootCmd, []string{})
		})

		assert.Empty(t, output)
	})
}

// TestExecuteWithExitCodes tests the behavior of Execute with different exit codes.
//
// It verifies:
//   - Successful commands do not call exitFunc
//   - Unknown subcommands exit with the failure code
//   - Configuration errors exit with the config error code
func TestExecuteWithExitCodes(t *testing.T) {
	oldExit := exitFunc
	defer func() { exitFunc = oldExit }()

	t.Run("success does not exit", func(t *testing.T) {
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"--help"})
		Execute()
		rootCmd.SetArgs(nil)
		// Reset the persistent help flag value so later Execute calls
		// in this package do not short-circuit into help output.
		_ = rootCmd.Flags().Set("help", "false")

		assert.Equal(t, -1, exitCode)
	})

	t.Run("unknown subcommand exits with failure", func(t *testing.T) {
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"nonexistent-subcommand-xyz"})
		captureStderr(t, Execute)
		rootCmd.SetArgs(nil)

		assert.Equal(t, errors.ExitFailure, exitCode)
	})

	t.Run("config error exits with config code", func(t *testing.T) {
		oldConfig := configFlag
		defer func() { configFlag = oldConfig }()

		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		missing := filepath.Join(t.TempDir(), "no-such-config.yml")
		rootCmd.SetArgs([]string{"report", "--config", missing, "--skip-build-checks"})
		captureStderr(t, Execute)
		rootCmd.SetArgs(nil)

		assert.Equal(t, errors.ExitConfigError, exitCode)
	})
}

// TestRootVersionFlag tests the -v shorthand on the root command.
func TestRootVersionFlag(t *testing.T) {
	oldVersionFlag := versionFlag
	defer func() { versionFlag = oldVersionFlag }()

	out, err := runCommand(t, "-v")
	assert.NoError(t, err)
	assert.Contains(t, out, "Version:")
}

// TestLoadConfigUsesDirectoryFlag tests working-directory resolution.
func TestLoadConfigUsesDirectoryFlag(t *testing.T) {
	oldDirectory := directoryFlag
	defer func() { directoryFlag = oldDirectory }()

	dir := t.TempDir()
	directoryFlag = dir

	cfg, err := loadConfig()
	assert.NoError(t, err)
	assert.Equal(t, dir, cfg.WorkingDir)
}

// TestLoadConfigDefaultsToCwd tests the fallback to the current directory.
func TestLoadConfigDefaultsToCwd(t *testing.T) {
	oldDirectory := directoryFlag
	defer func() { directoryFlag = oldDirectory }()
	directoryFlag = ""

	wd, err := os.Getwd()
	assert.NoError(t, err)

	cfg, err := loadConfig()
	assert.NoError(t, err)
	assert.Equal(t, wd, cfg.WorkingDir)
}
