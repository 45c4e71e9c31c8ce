package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pkgmon/pkgmon/pkg/constants"
	"github.com/pkgmon/pkgmon/pkg/trim"
)

var trimForceFlag bool

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Remove junk files from the dependency tree",
	Long: `Remove documentation, source maps, test fixtures, and other junk that
ships inside installed packages, reclaiming disk space.

Without --force this is a dry run: matches are listed but nothing is
deleted.`,
	RunE: runTrim,
}

func init() {
	trimCmd.Flags().BoolVarP(&trimForceFlag, "force", "f", false, "Actually delete matches (default is a dry run)")
}

// runTrim executes the trim command.
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Positional arguments (unused)
//
// Returns:
//   - error: Configuration failure or an unreadable dependency directory
func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	result, err := trim.Run(trim.Options{
		Root:     filepath.Join(cfg.WorkingDir, cfg.Manager.DependencyDir),
		Patterns: cfg.Trim.Patterns,
		Exclude:  cfg.Trim.Exclude,
		Force:    trimForceFlag,
	})
	if err != nil {
		return fmt.Errorf("trim failed: %w", err)
	}

	for _, match := range result.Matched {
		fmt.Println(match)
	}

	if len(result.Matched) == 0 {
		fmt.Printf("%s Nothing to trim\n", constants.IconSuccess)
		return nil
	}

	if trimForceFlag {
		fmt.Printf("\n%s Removed %d entries (%s)\n",
			constants.IconSuccess, result.Removed, trim.FormatSize(result.Bytes))
	} else {
		fmt.Printf("\n%s Dry run: %d entries (%s) would be removed. Re-run with --force to delete.\n",
			constants.IconWarning, len(result.Matched), trim.FormatSize(result.Bytes))
	}
	return nil
}
