package header

import "fmt"

// interaction is the drag state of the header. Exactly one variant is
// active, which makes resizing and reordering mutually exclusive.
type interaction interface {
	isInteraction()
}

type idle struct{}

type resizing struct {
	col int
}

type reordering struct {
	col        int
	dragOffset int
	overlay    Overlay
}

func (idle) isInteraction()       {}
func (resizing) isInteraction()   {}
func (reordering) isInteraction() {}

// IsResizing reports whether a column separator is being dragged
func (c *Controller) IsResizing() bool {
	_, ok := c.state.(resizing)
	return ok
}

// IsReordering reports whether a column is being dragged to a new position
func (c *Controller) IsReordering() bool {
	_, ok := c.state.(reordering)
	return ok
}

// IsDragging reports whether any drag gesture is active
func (c *Controller) IsDragging() bool {
	return c.IsResizing() || c.IsReordering()
}

func (c *Controller) draggedColumn() (int, bool) {
	switch st := c.state.(type) {
	case resizing:
		return st.col, true
	case reordering:
		return st.col, true
	default:
		return None, false
	}
}

// endDragging removes the visual artifacts of a drag
func (c *Controller) endDragging() {
	// only reordering uses the overlay
	if st, ok := c.state.(reordering); ok && st.overlay != nil {
		st.overlay.Clear()
		st.overlay.Release()
		st.overlay = nil
		c.state = st
	}

	c.host.SetCursor(CursorDefault)
}

// cancelDragging aborts the active drag without applying it. The caller is
// responsible for releasing the pointer capture if it still holds it.
func (c *Controller) cancelDragging() {
	col, ok := c.draggedColumn()
	if !ok {
		panic("header: cancelDragging called while not dragging anything")
	}

	c.endDragging()
	c.notify(Event{Kind: DraggingCancelled, Column: col})
	c.state = idle{}

	c.logger.Debug("header drag cancelled", "column", col)
}

// CaptureLost must be called when the host loses the pointer capture.
func (c *Controller) CaptureLost() {
	if c.IsDragging() {
		c.cancelDragging()
	}
}

func (c *Controller) mustBeResizing(op string) resizing {
	st, ok := c.state.(resizing)
	if !ok {
		panic(fmt.Sprintf("header: %s called while not resizing", op))
	}
	return st
}

func (c *Controller) mustBeReordering(op string) reordering {
	st, ok := c.state.(reordering)
	if !ok {
		panic(fmt.Sprintf("header: %s called while not reordering", op))
	}
	return st
}
