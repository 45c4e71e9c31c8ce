// Package output provides formatters for exporting command results in various formats.
// It supports CSV and JSON output formats as alternatives to the default table display.
package output

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default terminal table output.
	FormatTable Format = "table"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive. Valid values are "csv" and "json".
// Any unrecognized format returns FormatTable as the default.
//
// Parameters:
//   - s: Format string to parse (e.g., "csv", "JSON")
//
// Returns:
//   - Format: The parsed format, or FormatTable if unrecognized
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV
	case "json":
		return FormatJSON
	default:
		return FormatTable
	}
}

// IsStructuredFormat returns true if the format requires structured output (not table).
//
// Structured formats (CSV, JSON) are typically used for machine consumption
// and require different data collection than the interactive table format.
//
// Parameters:
//   - f: The format to check
//
// Returns:
//   - bool: true if format is CSV or JSON; false for table format
func IsStructuredFormat(f Format) bool {
	return f == FormatCSV || f == FormatJSON
}

// Formatter writes structured data to a destination writer.
//
// Fields:
//   - format: The output format this formatter produces
//   - writer: The destination for formatted output
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a formatter for the given format and writer.
//
// Parameters:
//   - format: Output format to produce
//   - w: Destination writer
//
// Returns:
//   - *Formatter: A formatter ready for use
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, writer: w}
}

// WriteJSON writes the value as indented JSON.
//
// Parameters:
//   - v: The value to encode
//
// Returns:
//   - error: Encoding or write error, nil on success
func (f *Formatter) WriteJSON(v any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes a header row followed by data rows in CSV format.
//
// Parameters:
//   - headers: Column headers for the first row
//   - rows: Data rows, each with one value per header
//
// Returns:
//   - error: Write error, nil on success
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
