// Package cmd implements the command-line interface for pkgmon.
// It provides commands for watching package installations in real time,
// reporting installed dependency trees, and cache maintenance.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkgmon/pkgmon/pkg/errors"
	"github.com/pkgmon/pkgmon/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool
var traceFlag bool
var versionFlag bool
var skipBuildChecksFlag bool
var configFlag string
var directoryFlag string

var rootCmd = &cobra.Command{
	Use:   "pkgmon",
	Short: "Real-time package installation monitor",
	Long:  `Watch package installations as they happen, across one project or all of them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if traceFlag {
			verbose.SetLevel(verbose.LevelTrace)
		} else if verboseFlag {
			verbose.Enable()
		}
		// Show build warnings (arch mismatch, dev build) at the top of every command
		if !skipBuildChecksFlag {
			if warnings := GetBuildWarnings(); warnings != "" {
				fmt.Fprint(os.Stderr, warnings)
				fmt.Fprintln(os.Stderr)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			printVersionOutput()
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success, including a watch session ended by interrupt
//   - 2: Runtime failure
//   - 3: Configuration or validation error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "Enable trace output (one line per filesystem event)")
	rootCmd.PersistentFlags().BoolVar(&skipBuildChecksFlag, "skip-build-checks", false, "Skip build validation warnings (dev build, arch mismatch)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a configuration file (default: .pkgmon.yml in the working directory)")
	rootCmd.PersistentFlags().StringVarP(&directoryFlag, "directory", "d", "", "Working directory (default: current directory)")

	// -v/--version is a LOCAL flag so it only works on the root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	// Commands ordered logically: info → workflow (watch → report → trim → clean)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(trimCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
}
