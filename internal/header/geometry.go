package header

import "fmt"

// Region tells which part of a column a point falls in
type Region int

const (
	NoWhere Region = iota
	LeftHalf
	RightHalf
	Separator
)

// String returns the string representation of a Region
func (r Region) String() string {
	switch r {
	case NoWhere:
		return "nowhere"
	case LeftHalf:
		return "left_half"
	case RightHalf:
		return "right_half"
	case Separator:
		return "separator"
	default:
		return "unknown"
	}
}

// ColumnStart returns the physical x coordinate where a column begins:
// the widths of the shown columns before it in display order plus the
// scroll offset.
func (c *Controller) ColumnStart(idx int) int {
	pos := c.scrollOffset
	for _, i := range c.order {
		if i == idx {
			return pos
		}

		col := c.columns.Column(i)
		if col.Shown() {
			pos += col.Width
		}
	}

	panic(fmt.Sprintf("header: column %d is not in the display order", idx))
}

// ColumnEnd returns the physical x coordinate just past a column
func (c *Controller) ColumnEnd(idx int) int {
	return c.ColumnStart(idx) + c.columns.Column(idx).Width
}

// BestWidth returns the total width of the shown columns
func (c *Controller) BestWidth() int {
	width := 0
	for _, idx := range c.order {
		if col := c.columns.Column(idx); col.Shown() {
			width += col.Width
		}
	}
	return width
}

// FindColumnAtPoint returns the column under the physical x coordinate and
// the region of it the point falls in. A point within the separator margin
// of a resizable column's right edge always reports that column's Separator.
// It returns (None, NoWhere) when no column matches.
func (c *Controller) FindColumnAtPoint(xPhysical int) (int, Region) {
	xLogical := xPhysical - c.scrollOffset
	margin := c.separatorMargin()

	pos := 0
	for _, idx := range c.order {
		col := c.columns.Column(idx)
		if !col.Shown() {
			continue
		}

		lastColEnd := pos
		pos += col.Width

		// approximately over the line separating it from the next column?
		if col.Resizable && abs(xLogical-pos) < margin {
			return idx, Separator
		}

		if xLogical >= lastColEnd && xLogical < pos {
			if xLogical-lastColEnd < pos-xLogical {
				return idx, LeftHalf
			}
			return idx, RightHalf
		}
	}

	return None, NoWhere
}

// FindColumnClosestToPoint is FindColumnAtPoint except that a point outside
// every column resolves to the last column in display order with region
// NoWhere.
func (c *Controller) FindColumnClosestToPoint(xPhysical int) (int, Region) {
	if idx, region := c.FindColumnAtPoint(xPhysical); idx != None {
		return idx, region
	}

	// xPhysical must be beyond the rightmost column
	if c.count == 0 {
		return None, NoWhere
	}
	return c.order[c.count-1], NoWhere
}

// FindColumnAfter returns the column following idx in display order, or
// None if idx is last or unknown.
func (c *Controller) FindColumnAfter(idx int) int {
	for n, i := range c.order {
		if i == idx && n+1 < len(c.order) {
			return c.order[n+1]
		}
	}
	return None
}

// FindColumnBefore returns the column preceding idx in display order, or
// None if idx is first or unknown.
func (c *Controller) FindColumnBefore(idx int) int {
	before := None
	for _, i := range c.order {
		if i == idx {
			return before
		}
		before = i
	}
	return None
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
