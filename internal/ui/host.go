package ui

import (
	"hdrbar/internal/header"
	"hdrbar/internal/render"
)

// screenHost is the header's window in the terminal: the first screen row.
// A terminal cannot change the pointer shape or repaint partially, so the
// cursor is only recorded for the status bar and refreshes just mark the
// header dirty for the next frame.
type screenHost struct {
	width    int
	enabled  bool
	captured bool
	cursor   header.Cursor
	dirty    bool
	overlay  *render.Overlay
}

func newScreenHost() *screenHost {
	return &screenHost{enabled: true}
}

func (h *screenHost) CaptureMouse()             { h.captured = true }
func (h *screenHost) ReleaseMouse()             { h.captured = false }
func (h *screenHost) SetCursor(c header.Cursor) { h.cursor = c }
func (h *screenHost) RefreshRect(r header.Rect) { h.dirty = true }
func (h *screenHost) Refresh()                  { h.dirty = true }
func (h *screenHost) ClientSize() (int, int)    { return h.width, 1 }
func (h *screenHost) IsEnabled() bool           { return h.enabled }

// AcquireOverlay implements header.Host
func (h *screenHost) AcquireOverlay() header.Overlay {
	h.overlay = render.NewOverlay(h.releaseOverlay)
	return h.overlay
}

func (h *screenHost) setSize(width int) {
	h.width = width
	h.dirty = true
}

// takeDirty reports whether the header needs repainting and resets the flag
func (h *screenHost) takeDirty() bool {
	dirty := h.dirty
	h.dirty = false
	return dirty
}

func (h *screenHost) setEnabled(enabled bool) {
	if h.enabled != enabled {
		h.enabled = enabled
		h.dirty = true
	}
}

// loseCapture drops the pointer capture, reporting whether it was held
func (h *screenHost) loseCapture() bool {
	had := h.captured
	h.captured = false
	return had
}

func (h *screenHost) releaseOverlay(*render.Overlay) {
	h.overlay = nil
	h.dirty = true
}

var _ header.Host = (*screenHost)(nil)
