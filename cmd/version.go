package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pkgmon/pkgmon/pkg/constants"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/pkgmon/pkgmon/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
	// BuildOS is the target OS the binary was built for.
	BuildOS = ""
	// BuildArch is the target architecture the binary was built for.
	BuildArch = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Show version, build date, and system information.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersionOutput()
	},
}

// printVersionOutput prints version, build, and runtime information to stdout.
//
// Output includes build target platform, runtime platform (if different),
// Go version, build date, git commit, and version string.
func printVersionOutput() {
	buildOS, buildArch := getBuildTarget()
	fmt.Printf("  Build:   %s/%s\n", buildOS, buildArch)

	// Show runtime only when it differs from the build target
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Printf("  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}

	fmt.Printf("  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Printf("  Date:    %s\n", BuildTime)
	}
	fmt.Println()
	if GitCommit != "" {
		fmt.Printf("  Git:     %s\n", GitCommit)
	}
	fmt.Printf("  Version: %s\n", Version)
}

// getBuildTarget returns the OS and architecture the binary was built for.
//
// Falls back to runtime values when build-time values weren't set (dev builds).
//
// Returns:
//   - string: Target operating system (e.g., "linux", "darwin", "windows")
//   - string: Target architecture (e.g., "amd64", "arm64")
func getBuildTarget() (string, string) {
	buildOS := BuildOS
	buildArch := BuildArch
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}
	return buildOS, buildArch
}

// HasArchMismatch returns true if the binary was built for a different
// OS or architecture than what it's running on.
//
// Returns:
//   - bool: true if build target differs from runtime platform
func HasArchMismatch() bool {
	if BuildOS == "" && BuildArch == "" {
		return false
	}
	buildOS, buildArch := getBuildTarget()
	return buildOS != runtime.GOOS || buildArch != runtime.GOARCH
}

// IsDevBuild returns true if this is a development build (no release tag).
//
// Returns:
//   - bool: true if Version equals "dev"
func IsDevBuild() bool {
	return Version == "dev"
}

// GetBuildWarnings returns all build-related warnings combined.
//
// Aggregates architecture mismatch and dev-build warnings into a single
// string shown at the top of every command.
//
// Returns:
//   - string: Combined warning messages; empty string if no warnings
func GetBuildWarnings() string {
	var warnings string

	if HasArchMismatch() {
		buildOS, buildArch := getBuildTarget()
		warnings += fmt.Sprintf("%s  Architecture mismatch: binary built for %s/%s but running on %s/%s\n"+
			"   This may cause unexpected behavior. Please download the correct binary.\n",
			constants.IconWarning, buildOS, buildArch, runtime.GOOS, runtime.GOARCH)
	}

	if IsDevBuild() {
		warnings += constants.IconWarning + "  Development build: this is an unreleased version without a version tag.\n" +
			"   For production use, please install a released version.\n"
	}

	return warnings
}
