package header

// EventKind identifies a header notification
type EventKind int

const (
	noEvent EventKind = iota
	BeginResize
	Resizing
	EndResize
	BeginReorder
	EndReorder
	DraggingCancelled
	Click
	DoubleClick
	RightClick
	RightDoubleClick
	MiddleClick
	MiddleDoubleClick
	SeparatorDoubleClick
)

// String returns the string representation of an EventKind
func (k EventKind) String() string {
	switch k {
	case BeginResize:
		return "begin_resize"
	case Resizing:
		return "resizing"
	case EndResize:
		return "end_resize"
	case BeginReorder:
		return "begin_reorder"
	case EndReorder:
		return "end_reorder"
	case DraggingCancelled:
		return "dragging_cancelled"
	case Click:
		return "click"
	case DoubleClick:
		return "double_click"
	case RightClick:
		return "right_click"
	case RightDoubleClick:
		return "right_double_click"
	case MiddleClick:
		return "middle_click"
	case MiddleDoubleClick:
		return "middle_double_click"
	case SeparatorDoubleClick:
		return "separator_double_click"
	default:
		return "unknown"
	}
}

// Vetoable reports whether a handler may reject the state change the event
// announces.
func (k EventKind) Vetoable() bool {
	switch k {
	case BeginResize, Resizing, BeginReorder, EndReorder:
		return true
	default:
		return false
	}
}

// Event is a notification sent to the collaborating Handler.
type Event struct {
	Kind   EventKind
	Column int // logical index of the affected column

	// Width is the proposed (min-width clamped) width for resize events.
	Width int

	// NewOrder is the destination display position for EndReorder.
	NewOrder int
}

// Verdict is a handler's answer to a notification
type Verdict int

const (
	// Unhandled means nobody processed the event. Vetoable events proceed.
	Unhandled Verdict = iota
	Accept
	Veto
)

// String returns the string representation of a Verdict
func (v Verdict) String() string {
	switch v {
	case Unhandled:
		return "unhandled"
	case Accept:
		return "accept"
	case Veto:
		return "veto"
	default:
		return "unknown"
	}
}

// Handler receives header notifications synchronously and may veto the
// vetoable ones.
type Handler interface {
	HandleHeaderEvent(ev Event) Verdict
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ev Event) Verdict

// HandleHeaderEvent implements Handler
func (f HandlerFunc) HandleHeaderEvent(ev Event) Verdict {
	return f(ev)
}
