package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkgmon/pkgmon/pkg/constants"
	"github.com/pkgmon/pkgmon/pkg/output"
	"github.com/pkgmon/pkgmon/pkg/report"
)

var reportOutputFlag string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report the installed dependency tree",
	Long: `Scan the working directory's dependency tree and report every installed
package with its version, dependency type, and installing parent.
Packages installed at more than one version are listed separately.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutputFlag, "output", "o", "", "Output format: json or csv (default: table)")
}

// runReport executes the report command.
//
// It performs the following operations:
//   - Builds the report for the working directory project
//   - Writes it as a table, or as JSON/CSV when --output is given
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Positional arguments (unused)
//
// Returns:
//   - error: Configuration failure or a missing dependency tree
func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	result, err := report.Build(report.Options{
		ProjectPath: cfg.WorkingDir,
		Manifest:    cfg.Manager.Manifest,
		LockFile:    cfg.Manager.LockFile,
		DepDir:      cfg.Manager.DependencyDir,
	})
	if err != nil {
		return err
	}

	format := output.ParseFormat(reportOutputFlag)
	if output.IsStructuredFormat(format) {
		return output.WriteReportResult(os.Stdout, format, result)
	}

	printReportTable(result)
	return nil
}

// printReportTable renders the report as a terminal table with a summary.
func printReportTable(result *output.ReportResult) {
	table := output.NewTable().
		AddColumn("NAME").
		AddColumn("VERSION").
		AddColumn("TYPE").
		AddColumn("PARENT")

	for _, entry := range result.Packages {
		table.UpdateWidths(entry.Name, displayValue(entry.Version), entry.Type, entry.Parent)
	}

	fmt.Println(table.HeaderRow())
	fmt.Println(table.SeparatorRow())
	for _, entry := range result.Packages {
		fmt.Println(table.FormatRow(entry.Name, displayValue(entry.Version), entry.Type, entry.Parent))
	}

	fmt.Println()
	fmt.Printf("%s %d packages: %d prod, %d dev, %d transitive\n",
		constants.IconPackage, result.Summary.Total,
		result.Summary.Direct, result.Summary.Dev, result.Summary.Transitive)

	if len(result.DuplicateVersions) > 0 {
		fmt.Println()
		fmt.Printf("%s %d packages installed at multiple versions:\n",
			constants.IconWarning, result.Summary.Duplicates)
		for _, dup := range result.DuplicateVersions {
			fmt.Printf("   %s: %s (newest %s)\n",
				dup.Name, strings.Join(dup.Versions, ", "), dup.Newest)
		}
	}
}

// displayValue substitutes the not-available placeholder for empty values.
func displayValue(s string) string {
	if s == "" {
		return constants.PlaceholderNA
	}
	return s
}
