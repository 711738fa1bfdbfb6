// Package csvrows reads header-addressed CSV tables.
package csvrows

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmpty is returned for input without a header row.
var ErrEmpty = errors.New("csv has no header")

// Table is a parsed CSV with a case-insensitive header index.
type Table struct {
	header  map[string]int
	columns []string
	Rows    [][]string
}

// Read parses b. Ragged rows are allowed; missing cells read as empty.
func Read(b []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(b, []byte("\ufeff"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	t := &Table{header: make(map[string]int, len(rows[0])), Rows: rows[1:]}
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := t.header[key]; !dup {
			t.header[key] = i
			t.columns = append(t.columns, key)
		}
	}
	return t, nil
}

// Index returns the column index of name, or -1.
func (t *Table) Index(name string) int {
	if i, ok := t.header[strings.ToLower(name)]; ok {
		return i
	}
	return -1
}

// Columns returns the normalized header names in file order, without
// duplicates.
func (t *Table) Columns() []string { return t.columns }

// Has reports whether the header names the column.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Get returns the trimmed cell, or "" when out of range.
func Get(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Float parses the cell; empty, "NA", "null" or malformed cells are NaN.
func Float(rec []string, i int) float64 {
	s := Get(rec, i)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null", "none":
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Int parses the cell, accepting "123.0" forms; ok is false otherwise.
func Int(rec []string, i int) (int, bool) {
	f := Float(rec, i)
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
