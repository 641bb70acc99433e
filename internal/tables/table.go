package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a parsed CSV dataset with normalized column labels.
type Table struct {
	Columns []string
	Rows    [][]string
	index   map[string]int
}

// NewTable normalizes the header and indexes columns for lookup. Rows are
// padded to the header width.
func NewTable(header []string, rows [][]string) Table {
	cols := NormalizeHeader(header)
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		key := Canonical(c)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	padded := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(cols) {
			row = append(row, make([]string, len(cols)-len(row))...)
		}
		padded = append(padded, row)
	}
	return Table{Columns: cols, Rows: padded, index: idx}
}

// ParseCSV reads a header row followed by records.
func ParseCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("empty table: no header row")
	}
	if err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return NewTable(header, rows), nil
}

// Index returns the position of a column. The name is matched after
// normalization so "TestCase" and "Test Case" address the same column.
func (t Table) Index(name string) (int, bool) {
	i, ok := t.index[Canonical(name)]
	return i, ok
}

// Has reports whether the table carries the column.
func (t Table) Has(name string) bool {
	_, ok := t.Index(name)
	return ok
}

// Value returns the trimmed cell at row/col. Out of range cells are blank.
func (t Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

func (t Table) blankRow(row int) bool {
	for _, cell := range t.Rows[row] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
