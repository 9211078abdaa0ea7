package header

// constrainByMinWidth returns the width a column would get if its right
// edge followed xPhysical, never less than the column's minimum width.
func (c *Controller) constrainByMinWidth(col, xPhysical int) int {
	xStart := c.ColumnStart(col)

	// MinWidth is 0 when there is no minimum, which still works here
	xMinEnd := xStart + c.columns.Column(col).MinWidth
	if xPhysical < xMinEnd {
		xPhysical = xMinEnd
	}

	return xPhysical - xStart
}

func (c *Controller) startOrContinueResizing(col, xPhysical int) {
	resizingNow := c.IsResizing()

	kind := BeginResize
	if resizingNow {
		kind = Resizing
	}

	width := c.constrainByMinWidth(col, xPhysical)
	if c.notify(Event{Kind: kind, Column: col, Width: width}) == Veto {
		if resizingNow {
			c.host.ReleaseMouse()
			c.cancelDragging()
		}
		// else: we just don't start to resize
	} else if !resizingNow {
		c.state = resizing{col: col}
		c.host.SetCursor(CursorSizeWE)
		c.host.CaptureMouse()

		c.logger.Debug("header resize started", "column", col, "width", width)
	}

	c.refreshColsAfter(col)
}

func (c *Controller) endResizing(xPhysical int) {
	st := c.mustBeResizing("endResizing")

	c.endDragging()
	c.host.ReleaseMouse()

	width := c.constrainByMinWidth(st.col, xPhysical)
	c.notify(Event{Kind: EndResize, Column: st.col, Width: width})

	c.state = idle{}

	c.logger.Debug("header resize finished", "column", st.col, "width", width)
}
