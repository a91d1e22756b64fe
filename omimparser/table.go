package omimparser

import (
	"encoding/csv"
	"strings"
)

// Table is an ordered sequence of string-typed rows with named columns.
// Column lookup is case-insensitive; on duplicate names the first column
// wins. All cells are stored trimmed, every field stays an untyped string.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable creates an empty table for the given column names.
func NewTable(columns []string) *Table {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.ToLower(col)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	return &Table{
		Columns: columns,
		Rows:    make([][]string, 0),
		index:   index,
	}
}

// HasColumn reports whether a column exists, matched case-insensitively.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[strings.ToLower(name)]
	return ok
}

// ColumnIndex returns the position of a column, matched case-insensitively,
// or -1 when the column does not exist.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[strings.ToLower(name)]; ok {
		return i
	}
	return -1
}

// Get returns the cell of row for the named column. Missing columns and
// rows shorter than the header degrade to an empty string, never an error.
func (t *Table) Get(row []string, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// AppendRow parses a data line on the table delimiter and appends the row.
// Rows shorter than the header are kept as-is; Get pads reads with empty
// strings.
func (t *Table) AppendRow(line string, delimiter string) {
	t.Rows = append(t.Rows, parseFields(line, delimiter))
}

// parseFields splits a line on the delimiter with CSV-style quoting honored,
// so a quoted cell may contain the delimiter itself. Every cell is trimmed.
func parseFields(line, delimiter string) []string {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = rune(delimiter[0])
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	fields, err := reader.Read()
	if err != nil {
		// Unparseable as CSV, fall back to a plain split
		fields = strings.Split(line, delimiter)
	}

	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}
	return fields
}

// rowIsEmpty reports whether every cell of a row is empty after trimming.
func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// firstNonBlank returns the index of the first line that is not empty or
// all-whitespace, or -1 when no such line exists.
func firstNonBlank(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}
