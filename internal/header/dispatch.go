package header

// HandleInput processes one pointer or keyboard event. It returns true when
// the event was consumed: by an active drag, by starting one, or by a
// handler processing the resulting click notification.
func (c *Controller) HandleInput(ev InputEvent) bool {
	if !ev.isPointer() {
		return c.handleKey(ev)
	}
	return c.handlePointer(ev)
}

func (c *Controller) handleKey(ev InputEvent) bool {
	if ev.Key == KeyEscape && c.IsDragging() {
		c.host.ReleaseMouse()
		c.cancelDragging()
		return true
	}
	return false
}

func (c *Controller) handlePointer(ev InputEvent) bool {
	wasSeparatorDClick := c.wasSeparatorDClick
	c.wasSeparatorDClick = false

	xPhysical := ev.X

	// a drag in progress gets every pointer event
	switch st := c.state.(type) {
	case resizing:
		if ev.isLeftUp() {
			c.endResizing(xPhysical)
		} else {
			c.startOrContinueResizing(st.col, xPhysical)
		}
		return true

	case reordering:
		if !ev.isLeftUp() {
			c.updateReorderingMarker(xPhysical)
			return true
		}

		// a gesture that did not move falls through to the click below
		if c.endReordering(xPhysical) {
			return true
		}
	}

	col, region := None, NoWhere
	if ev.Type != PointerLeave {
		col, region = c.FindColumnAtPoint(xPhysical)
	}

	if col != c.hover {
		hoverOld := c.hover
		c.hover = col

		c.refreshColIfNotNone(hoverOld)
		c.refreshColIfNotNone(col)
	}

	if ev.Type == PointerMove {
		if region == Separator {
			c.host.SetCursor(CursorSizeWE)
		} else {
			c.host.SetCursor(CursorDefault)
		}
		return false
	}

	// everything else only makes sense over a column
	if col == None {
		return false
	}

	if ev.Type == PointerDown && ev.Button == ButtonLeft {
		return c.startDrag(col, region, xPhysical)
	}

	kind := c.classifyClick(ev, region, wasSeparatorDClick)
	if kind == noEvent {
		return false
	}

	return c.notify(Event{Kind: kind, Column: col}) != Unhandled
}

// startDrag enters resize mode on a separator and reorder mode on the body
// of a reorderable column.
func (c *Controller) startDrag(col int, region Region, xPhysical int) bool {
	if region == Separator {
		if c.IsResizing() {
			panic("header: reentering column resize mode")
		}
		c.startOrContinueResizing(col, xPhysical)
		return true
	}

	if c.opts.Style&AllowReorder != 0 && c.columns.Column(col).Reorderable {
		if c.IsReordering() {
			panic("header: reentering column move mode")
		}
		c.startReordering(col, xPhysical)
		return true
	}

	return false
}

func (c *Controller) classifyClick(ev InputEvent, region Region, wasSeparatorDClick bool) EventKind {
	click := ev.Type == PointerUp
	dblclk := ev.Type == PointerDoubleClick
	if !click && !dblclk {
		return noEvent
	}

	switch ev.Button {
	case ButtonLeft:
		// left double clicks on a separator are special
		if region == Separator && dblclk {
			c.wasSeparatorDClick = true
			return SeparatorDoubleClick
		}
		if wasSeparatorDClick {
			return noEvent
		}
		if click {
			return Click
		}
		return DoubleClick

	case ButtonRight:
		if click {
			return RightClick
		}
		return RightDoubleClick

	case ButtonMiddle:
		if click {
			return MiddleClick
		}
		return MiddleDoubleClick
	}

	return noEvent
}
