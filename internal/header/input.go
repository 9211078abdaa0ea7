package header

// InputType discriminates InputEvent
type InputType int

const (
	// PointerMove is motion with no button held.
	PointerMove InputType = iota
	// PointerDrag is motion with a button held.
	PointerDrag
	PointerDown
	PointerUp
	PointerDoubleClick
	PointerLeave
	KeyDown
)

// String returns the string representation of an InputType
func (t InputType) String() string {
	switch t {
	case PointerMove:
		return "move"
	case PointerDrag:
		return "drag"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerDoubleClick:
		return "double_click"
	case PointerLeave:
		return "leave"
	case KeyDown:
		return "key_down"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// Key identifies a keyboard key the header cares about
type Key int

const (
	KeyOther Key = iota
	KeyEscape
)

// InputEvent is one pointer or keyboard event delivered to the header.
// X is the physical pointer position; it is ignored for key events.
type InputEvent struct {
	Type   InputType
	Button Button
	X      int
	Key    Key
}

func (e InputEvent) isLeftUp() bool {
	return e.Type == PointerUp && e.Button == ButtonLeft
}

func (e InputEvent) isPointer() bool {
	return e.Type != KeyDown
}
