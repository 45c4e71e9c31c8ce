package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkgmon/pkgmon/pkg/config"
	"github.com/pkgmon/pkgmon/pkg/constants"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long:  `Show the default or effective configuration, or create a .pkgmon.yml template.`,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective merged configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create a .pkgmon.yml template in the working directory")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .pkgmon.yml template file
//   - --show-defaults: Displays the built-in default configuration
//   - --show-effective: Displays the effective merged configuration
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Positional arguments (unused)
//
// Returns:
//   - error: Configuration load failure or a file write failure
func runConfig(cmd *cobra.Command, args []string) error {
	if configInitFlag {
		return createConfigTemplate()
	}

	if configShowDefaultsFlag {
		fmt.Println("Default configuration:")
		fmt.Println()
		fmt.Println(config.DefaultConfigYAML())
		return nil
	}

	if configShowEffectiveFlag {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		printEffectiveConfig(cfg)
		return nil
	}

	return cmd.Help()
}

// createConfigTemplate writes the default configuration as a .pkgmon.yml
// template, refusing to overwrite an existing file.
func createConfigTemplate() error {
	workDir := directoryFlag
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		workDir = wd
	}

	path := filepath.Join(workDir, ".pkgmon.yml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists; remove it first to re-create", path)
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigYAML()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("%s Created %s\n", constants.IconSuccess, path)
	return nil
}

// printEffectiveConfig renders the merged configuration a session would use.
func printEffectiveConfig(cfg *config.Config) {
	fmt.Println("Effective configuration:")
	fmt.Println()
	fmt.Printf("Working Directory: %s\n", cfg.WorkingDir)
	fmt.Println()
	fmt.Printf("Manager: %s\n", cfg.Manager.Name)
	fmt.Printf("  Manifest:       %s\n", cfg.Manager.Manifest)
	fmt.Printf("  Lock file:      %s\n", cfg.Manager.LockFile)
	fmt.Printf("  Dependency dir: %s\n", cfg.Manager.DependencyDir)
	if cfg.Manager.GlobalStore != "" {
		fmt.Printf("  Global store:   %s\n", cfg.Manager.GlobalStore)
	}
	fmt.Println()
	fmt.Printf("Discovery roots: %s\n", strings.Join(cfg.Discovery.Roots, ", "))
	fmt.Printf("  Max depth:  %d\n", cfg.Discovery.MaxDepth)
	fmt.Printf("  Batch size: %d\n", cfg.Discovery.BatchSize)
	fmt.Println()
	fmt.Printf("Tracker tick: %s, poll: %s after %s, abandon after: %s\n",
		cfg.GetTick(), cfg.GetPollInterval(), cfg.GetPollDelay(), cfg.GetAbandonAfter())
}
