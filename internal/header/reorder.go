package header

import "slices"

func (c *Controller) startReordering(col, xPhysical int) {
	if c.notify(Event{Kind: BeginReorder, Column: col}) == Veto {
		return
	}

	c.state = reordering{
		col:        col,
		dragOffset: xPhysical - c.ColumnStart(col),
		overlay:    c.host.AcquireOverlay(),
	}
	c.host.SetCursor(CursorHand)
	c.host.CaptureMouse()

	// no marker yet: the user may just be clicking the column and feedback
	// starts only when the pointer really moves
	c.logger.Debug("header reorder started", "column", col)
}

func (c *Controller) updateReorderingMarker(xPhysical int) {
	st := c.mustBeReordering("updateReorderingMarker")
	if st.overlay == nil {
		return
	}

	_, h := c.host.ClientSize()
	st.overlay.Clear()

	// phantom position of the column being dragged
	st.overlay.DrawPhantom(Rect{
		X: xPhysical - st.dragOffset,
		W: c.columns.Column(st.col).Width,
		H: h,
	})

	// and where it would be inserted if dropped now
	col, region := c.FindColumnClosestToPoint(xPhysical)
	if col == None {
		return
	}

	switch region {
	case LeftHalf:
		st.overlay.DrawMarker(Rect{X: c.ColumnStart(col) - dropMarkerWidth/2, W: dropMarkerWidth, H: h})
	case RightHalf, Separator:
		st.overlay.DrawMarker(Rect{X: c.ColumnEnd(col) - dropMarkerWidth/2, W: dropMarkerWidth, H: h})
	}
}

// endReordering finishes a reorder gesture at xPhysical. It returns false
// when the gesture should be treated as a plain click.
func (c *Controller) endReordering(xPhysical int) bool {
	st := c.mustBeReordering("endReordering")

	c.endDragging()
	c.host.ReleaseMouse()

	colOld := st.col
	colNew, region := c.FindColumnClosestToPoint(xPhysical)

	c.state = idle{}

	// dropping on the right half of a column means inserting before the
	// one after it
	locatedByNext := false
	if (region == RightHalf || region == Separator) && colNew != None {
		if next := c.FindColumnAfter(colNew); next != None {
			colNew = next
			locatedByNext = true
		}
	}

	if xPhysical-c.ColumnStart(colOld) == st.dragOffset {
		// the pointer never left its anchor
		return false
	}

	if colNew == None {
		return false
	}

	if colNew != colOld && region != NoWhere {
		c.commitReorder(colOld, colNew, region, locatedByNext)
	}

	// whether the column moved or not, the user did try to move it
	return true
}

func (c *Controller) commitReorder(colOld, colNew int, region Region, locatedByNext bool) {
	oldPos := c.ColumnPos(colOld)
	newPos := c.ColumnPos(colNew)

	if oldPos < newPos {
		// moving right, inserting before colNew is inserting after the
		// column preceding it; the last column without a successor is the
		// append case and keeps its position
		if newPos != c.count-1 || locatedByNext || region == LeftHalf {
			colNew = c.FindColumnBefore(colNew)
			newPos = c.ColumnPos(colNew)
		}
	}

	moved := moveInOrder(c.order, colOld, newPos)
	if slices.Equal(moved, c.order) {
		c.logger.Debug("header reorder is a no-op", "column", colOld, "pos", newPos)
		return
	}

	if c.notify(Event{Kind: EndReorder, Column: colOld, NewOrder: newPos}) == Veto {
		return
	}

	c.order = moved
	c.host.Refresh()

	c.logger.Debug("header column moved", "column", colOld, "from", oldPos, "to", newPos)
}
