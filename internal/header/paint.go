package header

// Paint draws the header left to right in display order. Hidden columns
// take no space; the area after the last column gets a filler button.
func (c *Controller) Paint(canvas Canvas) {
	w, h := c.host.ClientSize()
	enabled := c.host.IsEnabled()

	canvas.Clear()

	// account for the horizontal scroll offset of the parent
	canvas.SetDeviceOrigin(c.scrollOffset, 0)

	xpos := 0
	for i, idx := range c.order {
		col := c.columns.Column(idx)
		if !col.Shown() {
			continue
		}

		sortArrow := SortNone
		if col.SortKey {
			sortArrow = SortDown
			if col.SortAscending {
				sortArrow = SortUp
			}
		}

		var state StateFlags
		if enabled {
			if idx == c.hover {
				state = StateCurrent
			}
		} else {
			state = StateDisabled
		}

		if i == 0 {
			state |= StateSpecial
		}

		canvas.DrawHeaderButton(
			Rect{X: xpos, W: col.Width, H: h},
			state,
			sortArrow,
			&ButtonParams{Label: col.Title, Icon: col.Icon, Align: col.Align},
		)

		xpos += col.Width
	}

	if xpos < w {
		state := StateDirty
		if !enabled {
			state |= StateDisabled
		}
		canvas.DrawHeaderButton(Rect{X: xpos, W: w - xpos, H: h}, state, SortNone, nil)
	}
}
