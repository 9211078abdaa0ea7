package ui

import (
	"hdrbar/internal/dataset"
	"hdrbar/internal/header"
	"hdrbar/pkg/types"
)

const (
	maxInitialWidth = 30
	// one cell of padding on each side plus the separator
	cellChrome = 3
	sortChrome = 2
)

// Columns owns the header columns of a table and implements
// header.ColumnProvider
type Columns struct {
	cols    []header.Column
	initial []int
}

// NewColumns creates the columns for a table, sized to their content
func NewColumns(table *dataset.Table, minWidth int) *Columns {
	c := &Columns{
		cols:    make([]header.Column, len(table.Columns)),
		initial: make([]int, len(table.Columns)),
	}

	for i, title := range table.Columns {
		width := table.ContentWidth(i) + cellChrome
		if width > maxInitialWidth {
			width = maxInitialWidth
		}
		if width < minWidth {
			width = minWidth
		}

		align := header.AlignLeft
		if table.Numeric[i] {
			align = header.AlignRight
		}

		c.cols[i] = header.Column{
			Title:       title,
			Align:       align,
			Width:       width,
			MinWidth:    minWidth,
			Resizable:   true,
			Reorderable: true,
		}
		c.initial[i] = width
	}
	return c
}

// Column implements header.ColumnProvider
func (c *Columns) Column(idx int) header.Column {
	return c.cols[idx]
}

// Len returns the number of columns
func (c *Columns) Len() int {
	return len(c.cols)
}

// SetWidth changes a column width, never below its minimum
func (c *Columns) SetWidth(idx, width int) {
	if width < c.cols[idx].MinWidth {
		width = c.cols[idx].MinWidth
	}
	c.cols[idx].Width = width
}

// InitialWidth returns the width a column started with
func (c *Columns) InitialWidth(idx int) int {
	return c.initial[idx]
}

// SetHidden hides or shows a column
func (c *Columns) SetHidden(idx int, hidden bool) {
	c.cols[idx].Hidden = hidden
}

// ShownCount returns the number of visible columns
func (c *Columns) ShownCount() int {
	n := 0
	for _, col := range c.cols {
		if col.Shown() {
			n++
		}
	}
	return n
}

// Sort returns the sort column and direction
func (c *Columns) Sort() types.SortState {
	for i, col := range c.cols {
		if col.SortKey {
			return types.SortState{Column: i, Ascending: col.SortAscending}
		}
	}
	return types.SortState{Column: types.NoSort}
}

// SetSort makes idx the only sort column. types.NoSort clears sorting.
func (c *Columns) SetSort(s types.SortState) {
	for i := range c.cols {
		c.cols[i].SortKey = i == s.Column
		c.cols[i].SortAscending = i == s.Column && s.Ascending
	}
}

// ToggleSort sorts by idx ascending, or flips the direction when idx is
// already the sort column
func (c *Columns) ToggleSort(idx int) types.SortState {
	s := c.Sort()
	if s.Column == idx {
		s.Ascending = !s.Ascending
	} else {
		s = types.SortState{Column: idx, Ascending: true}
	}
	c.SetSort(s)
	return s
}

// Layouts returns the persisted form of every column
func (c *Columns) Layouts() []types.ColumnLayout {
	out := make([]types.ColumnLayout, len(c.cols))
	for i, col := range c.cols {
		out[i] = types.ColumnLayout{Title: col.Title, Width: col.Width, Hidden: col.Hidden}
	}
	return out
}

// ApplyLayouts restores widths and visibility. It reports false, changing
// nothing, when the stored columns do not match by count and title.
func (c *Columns) ApplyLayouts(layouts []types.ColumnLayout) bool {
	if len(layouts) != len(c.cols) {
		return false
	}
	for i, l := range layouts {
		if l.Title != c.cols[i].Title {
			return false
		}
	}

	for i, l := range layouts {
		c.SetWidth(i, l.Width)
		c.cols[i].Hidden = l.Hidden
	}
	return true
}
