package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoverTracking(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(move(10))
	assert.Equal(t, 0, f.ctrl.Hover())
	assert.Equal(t, []Rect{{X: 0, W: 50, H: 20}}, f.host.refreshRects)

	f.host.refreshRects = nil
	f.send(move(20))
	assert.Empty(t, f.host.refreshRects, "same column, nothing to repaint")

	f.send(move(70))
	assert.Equal(t, 1, f.ctrl.Hover())
	assert.Equal(t, []Rect{{X: 0, W: 50, H: 20}, {X: 50, W: 50, H: 20}}, f.host.refreshRects)

	f.host.refreshRects = nil
	f.send(InputEvent{Type: PointerLeave, X: 70})
	assert.Equal(t, None, f.ctrl.Hover())
	assert.Equal(t, []Rect{{X: 50, W: 50, H: 20}}, f.host.refreshRects)

	f.send(move(300))
	assert.Equal(t, None, f.ctrl.Hover())
}

func TestCursorFollowsSeparator(t *testing.T) {
	f := newFixture(t, 50, 50)

	f.send(move(52))
	assert.Equal(t, CursorSizeWE, f.host.cursor)

	f.send(move(20))
	assert.Equal(t, CursorDefault, f.host.cursor)
}

func TestMoveIsNeverConsumed(t *testing.T) {
	f := newFixture(t, 50)

	assert.False(t, f.ctrl.HandleInput(move(10)))
	assert.Empty(t, f.rec.events)
}

func TestClickClassification(t *testing.T) {
	tests := []struct {
		name string
		ev   InputEvent
		kind EventKind
	}{
		{"left up", InputEvent{Type: PointerUp, Button: ButtonLeft, X: 70}, Click},
		{"left double", InputEvent{Type: PointerDoubleClick, Button: ButtonLeft, X: 70}, DoubleClick},
		{"right up", InputEvent{Type: PointerUp, Button: ButtonRight, X: 70}, RightClick},
		{"right double", InputEvent{Type: PointerDoubleClick, Button: ButtonRight, X: 70}, RightDoubleClick},
		{"middle up", InputEvent{Type: PointerUp, Button: ButtonMiddle, X: 70}, MiddleClick},
		{"middle double", InputEvent{Type: PointerDoubleClick, Button: ButtonMiddle, X: 70}, MiddleDoubleClick},
		{"right double on separator", InputEvent{Type: PointerDoubleClick, Button: ButtonRight, X: 100}, RightDoubleClick},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, 50, 50)

			assert.True(t, f.ctrl.HandleInput(tt.ev))
			assert.Equal(t, []EventKind{tt.kind}, f.rec.kinds())
			assert.Equal(t, 1, f.rec.last().Column)
		})
	}
}

func TestIgnoredPointerEvents(t *testing.T) {
	f := newFixture(t, 50, 50)

	// other buttons, presses of non-left buttons, drags while idle and
	// anything outside the columns produce no notification
	f.send(
		InputEvent{Type: PointerUp, Button: ButtonOther, X: 10},
		InputEvent{Type: PointerDown, Button: ButtonRight, X: 10},
		InputEvent{Type: PointerDrag, Button: ButtonLeft, X: 10},
		InputEvent{Type: PointerUp, Button: ButtonLeft, X: 300},
		InputEvent{Type: PointerLeave, Button: ButtonLeft, X: 10},
	)

	assert.Empty(t, f.rec.events)
}

func TestSeparatorDoubleClickSuppressesClick(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(down(50), up(50))
	assert.Equal(t, []EventKind{BeginResize, EndResize}, f.rec.kinds())

	assert.True(t, f.ctrl.HandleInput(dclick(50)))
	assert.Equal(t, Event{Kind: SeparatorDoubleClick, Column: 0}, f.rec.last())

	assert.False(t, f.ctrl.HandleInput(up(50)))
	assert.Equal(t, []EventKind{BeginResize, EndResize, SeparatorDoubleClick}, f.rec.kinds())

	// only the release right after the double click is swallowed
	f.send(up(10))
	assert.Equal(t, Click, f.rec.last().Kind)
}

func TestSeparatorDoubleClickWithVetoedResize(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.rec.veto[BeginResize] = true

	f.send(down(100), up(100), dclick(100), up(100))

	// the vetoed press leaves the release to be reported as a plain click
	assert.Equal(t, []EventKind{BeginResize, Click, SeparatorDoubleClick}, f.rec.kinds())
	assert.Equal(t, 1, f.rec.last().Column)
	assert.False(t, f.ctrl.IsResizing())
}

func TestVetoIgnoredForClicks(t *testing.T) {
	f := newFixture(t, 50)
	f.rec.veto[Click] = true

	assert.True(t, f.ctrl.HandleInput(up(10)))
}

func TestNilHandlerAcceptsEverything(t *testing.T) {
	cols := newColumns(50, 50, 50)
	host := newFakeHost(200)
	ctrl := NewController(cols, host, nil, DefaultOptions())
	ctrl.SetColumnCount(3)

	ctrl.HandleInput(down(10))
	ctrl.HandleInput(drag(140))
	ctrl.HandleInput(up(140))
	assert.Equal(t, []int{1, 2, 0}, ctrl.ColumnsOrder())

	// clicks nobody handles are not consumed
	assert.False(t, ctrl.HandleInput(up(10)))
}

func TestEscapeWhenIdleIsNotConsumed(t *testing.T) {
	f := newFixture(t, 50)

	assert.False(t, f.ctrl.HandleInput(escape()))
	assert.False(t, f.ctrl.HandleInput(InputEvent{Type: KeyDown, Key: KeyOther}))
	f.ctrl.CaptureLost()
	assert.Empty(t, f.rec.events)
}
