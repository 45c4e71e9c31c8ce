package output

import (
	"fmt"
	"io"
)

// WriteReportResult writes report results in the specified format.
//
// It performs the following operations:
//   - Step 1: Creates a formatter for the requested format
//   - Step 2: Writes the report result using format-specific logic
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON or FormatCSV)
//   - result: Report result data to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails,
//     returns the underlying error; otherwise returns nil
func WriteReportResult(w io.Writer, format Format, result *ReportResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatCSV:
		return writeReportCSV(formatter, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeReportCSV writes report results in CSV format using the formatter.
//
// Parameters:
//   - f: The formatter instance to use for CSV writing
//   - result: Report result data containing package entries
//
// Returns:
//   - error: When CSV write fails; returns nil on success
func writeReportCSV(f *Formatter, result *ReportResult) error {
	headers := []string{"NAME", "VERSION", "TYPE", "PARENT"}
	rows := make([][]string, 0, len(result.Packages))
	for _, entry := range result.Packages {
		rows = append(rows, []string{entry.Name, entry.Version, entry.Type, entry.Parent})
	}
	return f.WriteCSV(headers, rows)
}
