package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeOverlay struct {
	host     *fakeHost
	phantoms []Rect
	markers  []Rect
	clears   int
	released bool
}

func (o *fakeOverlay) Clear() {
	o.clears++
	o.phantoms = nil
	o.markers = nil
}

func (o *fakeOverlay) DrawPhantom(r Rect) { o.phantoms = append(o.phantoms, r) }
func (o *fakeOverlay) DrawMarker(r Rect)  { o.markers = append(o.markers, r) }

func (o *fakeOverlay) Release() {
	o.released = true
	o.host.liveOverlays--
}

type fakeHost struct {
	width, height int
	disabled      bool

	captured     bool
	captures     int
	releases     int
	cursor       Cursor
	refreshRects []Rect
	refreshes    int
	overlays     []*fakeOverlay
	liveOverlays int
}

func newFakeHost(width int) *fakeHost {
	return &fakeHost{width: width, height: 20}
}

func (h *fakeHost) CaptureMouse() {
	h.captured = true
	h.captures++
}

func (h *fakeHost) ReleaseMouse() {
	h.captured = false
	h.releases++
}

func (h *fakeHost) SetCursor(c Cursor)        { h.cursor = c }
func (h *fakeHost) RefreshRect(r Rect)        { h.refreshRects = append(h.refreshRects, r) }
func (h *fakeHost) Refresh()                  { h.refreshes++ }
func (h *fakeHost) ClientSize() (int, int)    { return h.width, h.height }
func (h *fakeHost) IsEnabled() bool           { return !h.disabled }
func (h *fakeHost) lastOverlay() *fakeOverlay { return h.overlays[len(h.overlays)-1] }

func (h *fakeHost) AcquireOverlay() Overlay {
	o := &fakeOverlay{host: h}
	h.overlays = append(h.overlays, o)
	h.liveOverlays++
	return o
}

// recorder is a Handler that logs every event and vetoes configured kinds
type recorder struct {
	events []Event
	veto   map[EventKind]bool
}

func newRecorder() *recorder {
	return &recorder{veto: make(map[EventKind]bool)}
}

func (r *recorder) HandleHeaderEvent(ev Event) Verdict {
	r.events = append(r.events, ev)
	if r.veto[ev.Kind] {
		return Veto
	}
	return Accept
}

func (r *recorder) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func (r *recorder) last() Event {
	return r.events[len(r.events)-1]
}

type columnSet []Column

func (s columnSet) Column(idx int) Column { return s[idx] }

func newColumns(widths ...int) columnSet {
	cols := make(columnSet, len(widths))
	for i, w := range widths {
		cols[i] = Column{
			Title:       string(rune('A' + i)),
			Width:       w,
			Resizable:   true,
			Reorderable: true,
		}
	}
	return cols
}

type fixture struct {
	cols columnSet
	host *fakeHost
	rec  *recorder
	ctrl *Controller
}

func newFixture(t *testing.T, widths ...int) *fixture {
	t.Helper()

	f := &fixture{
		cols: newColumns(widths...),
		host: newFakeHost(400),
		rec:  newRecorder(),
	}
	f.ctrl = NewController(f.cols, f.host, f.rec, DefaultOptions())
	f.ctrl.SetColumnCount(len(widths))
	require.Equal(t, len(widths), f.ctrl.ColumnCount())
	return f
}

func (f *fixture) send(events ...InputEvent) {
	for _, ev := range events {
		f.ctrl.HandleInput(ev)
	}
}

func down(x int) InputEvent   { return InputEvent{Type: PointerDown, Button: ButtonLeft, X: x} }
func up(x int) InputEvent     { return InputEvent{Type: PointerUp, Button: ButtonLeft, X: x} }
func drag(x int) InputEvent   { return InputEvent{Type: PointerDrag, Button: ButtonLeft, X: x} }
func move(x int) InputEvent   { return InputEvent{Type: PointerMove, X: x} }
func dclick(x int) InputEvent { return InputEvent{Type: PointerDoubleClick, Button: ButtonLeft, X: x} }
func escape() InputEvent      { return InputEvent{Type: KeyDown, Key: KeyEscape} }
