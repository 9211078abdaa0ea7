package header

// Rect is an axis aligned rectangle in header coordinates
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the first x coordinate past the rectangle
func (r Rect) Right() int {
	return r.X + r.W
}

// Cursor is the pointer shape the header asks the host to show
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorSizeWE
	CursorHand
)

// String returns the string representation of a Cursor
func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorSizeWE:
		return "size_we"
	case CursorHand:
		return "hand"
	default:
		return "unknown"
	}
}

// StateFlags describe how a header button should be drawn
type StateFlags uint8

const (
	// StateCurrent marks the hovered button.
	StateCurrent StateFlags = 1 << iota
	// StateDisabled is set on every button when the host is disabled.
	StateDisabled
	// StateSpecial marks the first button in display order.
	StateSpecial
	// StateDirty marks the filler segment after the last column.
	StateDirty
)

// Has reports whether all bits of f are set
func (s StateFlags) Has(f StateFlags) bool {
	return s&f == f
}

// SortIcon is the sort arrow drawn on a header button
type SortIcon int

const (
	SortNone SortIcon = iota
	SortUp
	SortDown
)

// ButtonParams carries the label of a header button
type ButtonParams struct {
	Label string
	Icon  string
	Align Align
}

// Canvas is the paint target for the header. Drawing coordinates are
// logical; the device origin shifts them to physical positions.
type Canvas interface {
	SetDeviceOrigin(x, y int)
	Clear()
	DrawHeaderButton(r Rect, state StateFlags, sort SortIcon, params *ButtonParams)
}

// Overlay is a transient drawing surface on top of the header, owned by an
// active reorder gesture. Rectangles are in physical coordinates.
type Overlay interface {
	Clear()
	DrawPhantom(r Rect)
	DrawMarker(r Rect)
	Release()
}

// Host is the window hosting the header: pointer capture, cursor, repaint
// requests and the overlay.
type Host interface {
	CaptureMouse()
	ReleaseMouse()
	SetCursor(c Cursor)
	RefreshRect(r Rect)
	Refresh()
	ClientSize() (w, h int)
	IsEnabled() bool
	AcquireOverlay() Overlay
}
