// Package csvstore reads the flat-file data directory that backs the server
// when no database is configured. Each CSV file carries a header row; rows
// are exposed as column-name lookups so repositories stay independent of
// column ordering.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Table holds the parsed contents of a single CSV file.
type Table struct {
	Name    string
	columns map[string]int
	records [][]string
}

// Load reads and parses the CSV file at dir/name. The first row is treated
// as the header.
func Load(dir, name string) (*Table, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		columns[col] = i
	}

	return &Table{
		Name:    name,
		columns: columns,
		records: rows[1:],
	}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.records) }

// Row returns an accessor for the i-th data row.
func (t *Table) Row(i int) Row {
	return Row{table: t, index: i}
}

// HasColumn reports whether the table header contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Row is a lightweight accessor over a single CSV record.
type Row struct {
	table *Table
	index int
}

// Index returns the zero-based position of the row in the file.
func (r Row) Index() int { return r.index }

func (r Row) raw(col string) (string, bool) {
	i, ok := r.table.columns[col]
	if !ok {
		return "", false
	}
	rec := r.table.records[r.index]
	if i >= len(rec) {
		return "", false
	}
	return rec[i], true
}

// String returns the named column, or "" when the column is absent.
func (r Row) String(col string) string {
	s, _ := r.raw(col)
	return s
}

// Int parses the named column as an integer. Missing or malformed values
// return zero.
func (r Row) Int(col string) int {
	s, ok := r.raw(col)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Tolerate float-formatted integers such as "4.0"
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return n
}

// Float parses the named column as a float64. Missing or malformed values
// return zero.
func (r Row) Float(col string) float64 {
	s, ok := r.raw(col)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// NullInt parses the named column as an optional integer. Empty cells map
// to nil, matching nullable foreign keys in the database schema.
func (r Row) NullInt(col string) *int {
	s, ok := r.raw(col)
	if !ok || s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil
		}
		n = int(f)
	}
	return &n
}
