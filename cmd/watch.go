package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkgmon/pkgmon/pkg/monitor"
	"github.com/pkgmon/pkgmon/pkg/verbose"
)

var allFlag bool
var quickFlag bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch package installations in real time",
	Long: `Watch dependency directories for package installations and report
their progress, dependency chain, and completion.

By default only the working directory project is watched. With --all,
projects are discovered across the configured root directories and the
package manager's global store is watched too. With --quick, the working
directory is watched immediately and the full discovery scan is deferred.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Watch all discoverable projects and the global store")
	watchCmd.Flags().BoolVarP(&quickFlag, "quick", "q", false, "Watch the working directory now, discover the rest in the background (implies --all)")
}

// runWatch executes the watch command.
//
// It performs the following operations:
//   - Loads and validates configuration
//   - Installs an interrupt handler; Ctrl-C ends the session cleanly with
//     exit code 0
//   - Runs the local or universal watch session until interrupted
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Positional arguments (unused)
//
// Returns:
//   - error: Configuration or session setup failure
func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller, err := monitor.NewController(cfg, os.Stdout)
	if err != nil {
		return err
	}

	verbose.WithDocRef("watch", "Starting watch session")
	if allFlag || quickFlag {
		return controller.RunUniversal(ctx, quickFlag)
	}
	return controller.RunLocal(ctx)
}
