package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is the data shown below the header. Columns are addressed by
// logical index; rows keep one cell per column.
type Table struct {
	Columns []string
	Rows    [][]string
	Numeric []bool
}

// Demo returns the built-in sample table
func Demo() *Table {
	t := &Table{
		Columns: []string{"Name", "Kind", "Size", "Modified", "Owner"},
		Rows: [][]string{
			{"README.md", "text", "2140", "2024-03-02", "alice"},
			{"go.mod", "text", "812", "2024-03-09", "bob"},
			{"main.go", "source", "96", "2024-02-27", "alice"},
			{"header.go", "source", "5930", "2024-03-11", "carol"},
			{"logo.png", "image", "48211", "2023-12-30", "dave"},
			{"layouts.db", "sqlite", "16384", "2024-03-10", "bob"},
			{"notes.txt", "text", "377", "2024-01-15", "carol"},
			{"theme.yaml", "config", "644", "2024-03-01", "alice"},
			{"archive.tar", "archive", "1048576", "2023-11-05", "erin"},
			{"Makefile", "text", "1203", "2024-02-14", "bob"},
		},
	}
	t.detectNumeric()
	return t
}

// LoadCSV reads a table from a CSV file whose first record is the header
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a table from CSV data whose first record is the header.
// Short records are padded, long ones truncated.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	titles, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: titles, Rows: make([][]string, 0)}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]string, len(titles))
		copy(row, record)
		t.Rows = append(t.Rows, row)
	}

	t.detectNumeric()
	return t, nil
}

// detectNumeric marks columns whose non-empty cells all parse as numbers
func (t *Table) detectNumeric() {
	t.Numeric = make([]bool, len(t.Columns))
	for col := range t.Columns {
		numeric, seen := true, false
		for _, row := range t.Rows {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric = false
				break
			}
		}
		t.Numeric[col] = numeric && seen
	}
}

// ContentWidth returns the display width of the widest cell of a column,
// title included
func (t *Table) ContentWidth(col int) int {
	width := lipgloss.Width(t.Columns[col])
	for _, row := range t.Rows {
		if w := lipgloss.Width(row[col]); w > width {
			width = w
		}
	}
	return width
}

// SortBy orders the rows by a column. Numeric columns compare by value.
// The sort is stable so equal rows keep their previous order.
func (t *Table) SortBy(col int, ascending bool) {
	less := func(a, b string) bool { return a < b }
	if t.Numeric[col] {
		less = func(a, b string) bool {
			x, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
			y, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
			if errA != nil || errB != nil {
				// empty cells go first
				return errA != nil && errB == nil
			}
			return x < y
		}
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		if ascending {
			return less(t.Rows[i][col], t.Rows[j][col])
		}
		return less(t.Rows[j][col], t.Rows[i][col])
	})
}
