package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkgmon/pkgmon/pkg/cmdexec"
	"github.com/pkgmon/pkgmon/pkg/constants"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the package manager cache",
	Long: `Run the configured cache clean commands through the package manager
(by default "npm cache clean --force").`,
	RunE: runClean,
}

// runClean executes the clean command.
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Positional arguments (unused)
//
// Returns:
//   - error: Configuration failure or a failed clean command
func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	out, err := cmdexec.Execute(cmd.Context(), cfg.Clean.Commands, cfg.WorkingDir,
		cfg.GetCleanTimeoutSeconds(), map[string]string{
			"manager": cfg.Manager.Name,
		})
	if err != nil {
		return fmt.Errorf("cache clean failed: %w", err)
	}

	if text := strings.TrimSpace(string(out)); text != "" {
		fmt.Println(text)
	}
	fmt.Printf("%s Cache cleaned\n", constants.IconSuccess)
	return nil
}
