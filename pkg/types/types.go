package types

import (
	"slices"
	"time"
)

// Common types shared by the header, persistence and remote control

// NoSort marks a layout without a sort column
const NoSort = -1

// Layout is the persisted state of a header: display order, per column
// width and visibility, the sort column and the horizontal scroll.
type Layout struct {
	Name         string         `json:"name" yaml:"name"`
	Order        []int          `json:"order" yaml:"order"`
	Columns      []ColumnLayout `json:"columns" yaml:"columns"`
	Sort         SortState      `json:"sort" yaml:"sort"`
	ScrollOffset int            `json:"scroll_offset" yaml:"scroll_offset"`
	UpdatedAt    time.Time      `json:"updated_at" yaml:"updated_at"`
}

// ColumnLayout is the persisted state of one column, by logical index
type ColumnLayout struct {
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// SortState names the sort column and its direction
type SortState struct {
	Column    int  `json:"column" yaml:"column"`
	Ascending bool `json:"ascending" yaml:"ascending"`
}

// SortDirection represents the direction of the sort column
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// String returns the string representation of a SortDirection
func (d SortDirection) String() string {
	switch d {
	case SortNone:
		return "none"
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// Direction returns the sort direction of column idx
func (s SortState) Direction(idx int) SortDirection {
	switch {
	case s.Column != idx || s.Column == NoSort:
		return SortNone
	case s.Ascending:
		return SortAscending
	default:
		return SortDescending
	}
}

// Equal reports whether two layouts describe the same header, ignoring
// the time they were saved.
func (l Layout) Equal(other Layout) bool {
	return l.Name == other.Name &&
		slices.Equal(l.Order, other.Order) &&
		slices.Equal(l.Columns, other.Columns) &&
		l.Sort == other.Sort &&
		l.ScrollOffset == other.ScrollOffset
}

// Clone returns a deep copy of the layout
func (l Layout) Clone() Layout {
	l.Order = slices.Clone(l.Order)
	l.Columns = slices.Clone(l.Columns)
	return l
}
