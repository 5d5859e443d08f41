package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is a fully loaded delimited file: the column lookup built from the
// first line and the data rows that follow it.
type Table struct {
	// Rows holds the data rows. When the file has no header, this includes
	// the first line.
	Rows [][]string

	// HasHeader records whether the first line was consumed as a header.
	HasHeader bool

	// DuplicateColumns lists header names that occurred more than once. The
	// last occurrence is the one that Column resolves to.
	DuplicateColumns []string

	header map[string]int
}

// BuildHeaderIndex maps each column name to its position. Duplicated names
// resolve to their last occurrence.
func BuildHeaderIndex(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[name] = i
	}

	return out
}

// NewTable wraps parsed records. With hasHeader, the first record names the
// columns and is not treated as data. Without it, columns can only be
// addressed by their zero-based position ("0", "1", ...).
func NewTable(records [][]string, hasHeader bool) *Table {
	t := &Table{HasHeader: hasHeader, header: map[string]int{}}

	if !hasHeader || len(records) == 0 {
		t.Rows = records
		return t
	}

	t.header = BuildHeaderIndex(records[0])
	seen := make(map[string]struct{}, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, exists := seen[name]; exists {
			t.DuplicateColumns = append(t.DuplicateColumns, name)
		}
		seen[name] = struct{}{}
	}
	t.Rows = records[1:]

	return t
}

// Column resolves a column name to its position.
func (t *Table) Column(name string) (int, error) {
	if col, exists := t.header[name]; exists {
		return col, nil
	}

	if !t.HasHeader {
		if col, err := strconv.Atoi(name); err == nil && col >= 0 {
			return col, nil
		}
		return 0, fmt.Errorf("Column %q must be a zero-based column number when the input has no header", name)
	}

	return 0, fmt.Errorf("Column %q was not found in the header", name)
}

// Columns resolves several column names at once.
func (t *Table) Columns(names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}

	return out, nil
}

// field returns row[col], or "" when the row is too short to have it.
func field(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}

	return ""
}

// ParseValue converts a cell to a number. Empty cells are NaN. ok is false
// when a non-empty cell could not be parsed; the value is then NaN too.
func ParseValue(cell string) (value float64, ok bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nan, true
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nan, false
	}

	return v, true
}
