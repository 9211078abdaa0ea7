package render

import "hdrbar/internal/header"

// Overlay holds the transient drawing of a column drag: the phantom of the
// dragged column and the drop marker. It implements header.Overlay.
type Overlay struct {
	phantoms  []header.Rect
	markers   []header.Rect
	released  bool
	onRelease func(*Overlay)
}

// NewOverlay creates a new overlay. onRelease, if not nil, is called once
// when the overlay is released.
func NewOverlay(onRelease func(*Overlay)) *Overlay {
	return &Overlay{onRelease: onRelease}
}

// Clear removes everything drawn so far
func (o *Overlay) Clear() {
	o.phantoms = o.phantoms[:0]
	o.markers = o.markers[:0]
}

// DrawPhantom draws the semi-transparent image of the dragged column
func (o *Overlay) DrawPhantom(r header.Rect) {
	o.phantoms = append(o.phantoms, r)
}

// DrawMarker draws the drop position indicator
func (o *Overlay) DrawMarker(r header.Rect) {
	o.markers = append(o.markers, r)
}

// Release ends the overlay's lifetime. Further releases are ignored.
func (o *Overlay) Release() {
	if o.released {
		return
	}
	o.released = true
	o.phantoms = nil
	o.markers = nil
	if o.onRelease != nil {
		o.onRelease(o)
	}
}

// Released reports whether the overlay was released
func (o *Overlay) Released() bool {
	return o.released
}

// Empty reports whether nothing is drawn
func (o *Overlay) Empty() bool {
	return len(o.phantoms) == 0 && len(o.markers) == 0
}

var _ header.Overlay = (*Overlay)(nil)
var _ header.Canvas = (*Canvas)(nil)
