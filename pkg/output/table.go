// Package output provides utilities for formatting command output.
package output

import (
	"fmt"
	"strings"

	"github.com/pkgmon/pkgmon/pkg/utils"
)

// Column represents a single table column with its header and current width.
//
// Fields:
//   - Header: The display text for this column's header
//   - Width: The current display width for this column in characters
type Column struct {
	Header string
	Width  int
}

// Table provides a flexible table formatter with dynamic column widths.
// It handles Unicode-aware width calculations and consistent formatting.
//
// Fields:
//   - columns: List of columns with their headers and widths
//   - separator: String used to separate columns in formatted output (default: "  ")
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a new table formatter and returns a pointer to it.
//
// The table is initialized with an empty column list and a default separator
// of two spaces ("  ").
//
// Returns:
//   - *Table: A new table instance ready for column configuration
func NewTable() *Table {
	return &Table{
		columns:   make([]Column, 0),
		separator: "  ",
	}
}

// WithSeparator sets a custom column separator and returns the table.
//
// Parameters:
//   - sep: The string to use between columns (e.g., " | ")
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) WithSeparator(sep string) *Table {
	t.separator = sep
	return t
}

// AddColumn adds a column with the given header and returns the table.
//
// The initial width is set to the display width of the header using
// Unicode-aware width calculation.
//
// Parameters:
//   - header: The text to display in the column header
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.DisplayWidth(header),
	})
	return t
}

// UpdateWidths grows column widths to fit the given row values.
//
// Extra values beyond the configured column count are ignored.
//
// Parameters:
//   - values: One value per column, in column order
func (t *Table) UpdateWidths(values ...string) {
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		if w := utils.DisplayWidth(val); w > t.columns[i].Width {
			t.columns[i].Width = w
		}
	}
}

// HeaderRow formats the header row with all column headers padded to width.
//
// Returns:
//   - string: The formatted header row
func (t *Table) HeaderRow() string {
	parts := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		parts = append(parts, utils.ToWidth(col.Header, col.Width))
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// SeparatorRow formats a dashed separator row matching the column widths.
//
// Returns:
//   - string: The formatted separator row
func (t *Table) SeparatorRow() string {
	parts := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		parts = append(parts, strings.Repeat("-", col.Width))
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats a data row with values padded to the column widths.
//
// Missing values render as empty cells; extra values are ignored.
//
// Parameters:
//   - values: One value per column, in column order
//
// Returns:
//   - string: The formatted data row
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, 0, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts = append(parts, utils.ToWidth(val, col.Width))
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// ColumnCount returns the number of configured columns.
//
// Returns:
//   - int: The column count
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// String renders the header and separator rows for debugging.
//
// Returns:
//   - string: Header and separator rows joined by a newline
func (t *Table) String() string {
	return fmt.Sprintf("%s\n%s", t.HeaderRow(), t.SeparatorRow())
}
