package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeLifecycle(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	// B's right edge is at 100
	f.send(down(100))
	require.True(t, f.ctrl.IsResizing())
	assert.True(t, f.host.captured)
	assert.Equal(t, CursorSizeWE, f.host.cursor)
	assert.Equal(t, Event{Kind: BeginResize, Column: 1, Width: 50}, f.rec.last())

	f.send(drag(120))
	assert.Equal(t, Event{Kind: Resizing, Column: 1, Width: 70}, f.rec.last())

	f.send(up(130))
	assert.Equal(t, Event{Kind: EndResize, Column: 1, Width: 80}, f.rec.last())
	assert.False(t, f.ctrl.IsDragging())
	assert.False(t, f.host.captured)
	assert.Equal(t, CursorDefault, f.host.cursor)

	// the controller never applies the width itself
	assert.Equal(t, 50, f.cols[1].Width)
	assert.Equal(t, []EventKind{BeginResize, Resizing, EndResize}, f.rec.kinds())
}

func TestResizeClampsToMinimumWidth(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.cols[1].MinWidth = 30

	f.send(down(100), drag(60))
	assert.Equal(t, Event{Kind: Resizing, Column: 1, Width: 30}, f.rec.last())

	// left of the column start
	f.send(drag(20))
	assert.Equal(t, 30, f.rec.last().Width)

	f.send(up(10))
	assert.Equal(t, Event{Kind: EndResize, Column: 1, Width: 30}, f.rec.last())
}

func TestResizeWidthNeverBelowMinimum(t *testing.T) {
	for _, minWidth := range []int{0, 1, 17, 45} {
		f := newFixture(t, 50, 50, 50)
		f.cols[1].MinWidth = minWidth

		f.send(down(100))
		for x := -200; x <= 300; x += 7 {
			f.send(drag(x))
			assert.GreaterOrEqual(t, f.rec.last().Width, minWidth, "x=%d", x)
		}
		f.send(up(-500))
		assert.Equal(t, minWidth, f.rec.last().Width)
	}
}

func TestResizeZeroMinimumIsUnconstrained(t *testing.T) {
	f := newFixture(t, 50, 50)

	f.send(down(50), drag(10))
	assert.Equal(t, 10, f.rec.last().Width)
}

func TestBeginResizeVeto(t *testing.T) {
	f := newFixture(t, 50, 50)
	f.rec.veto[BeginResize] = true

	f.send(down(50))
	assert.False(t, f.ctrl.IsResizing())
	assert.False(t, f.host.captured)
	assert.Zero(t, f.host.captures)
	assert.Equal(t, []EventKind{BeginResize}, f.rec.kinds())
}

func TestResizingVetoCancels(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.rec.veto[Resizing] = true

	f.send(down(100))
	f.host.refreshRects = nil

	f.send(drag(130))
	assert.False(t, f.ctrl.IsDragging())
	assert.False(t, f.host.captured)
	assert.Equal(t, CursorDefault, f.host.cursor)
	assert.Equal(t, []EventKind{BeginResize, Resizing, DraggingCancelled}, f.rec.kinds())
	assert.Equal(t, 1, f.rec.last().Column)

	// the region right of the column is repainted either way
	require.NotEmpty(t, f.host.refreshRects)
	assert.Equal(t, Rect{X: 50, W: 350, H: 20}, f.host.refreshRects[len(f.host.refreshRects)-1])
}

func TestResizeRepaintsFromColumnRightward(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(down(100))
	f.host.refreshRects = nil
	f.send(drag(140))

	assert.Equal(t, []Rect{{X: 50, W: 350, H: 20}}, f.host.refreshRects)
}

func TestCaptureLostWhileResizing(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	before := f.ctrl.ColumnsOrder()

	f.send(down(100), drag(140))
	f.ctrl.CaptureLost()

	assert.False(t, f.ctrl.IsDragging())
	assert.Equal(t, Event{Kind: DraggingCancelled, Column: 1}, f.rec.last())
	assert.Equal(t, before, f.ctrl.ColumnsOrder())
	assert.Equal(t, []int{50, 50, 50}, []int{f.cols[0].Width, f.cols[1].Width, f.cols[2].Width})

	// capture is already gone, nothing to release
	assert.Equal(t, 0, f.host.releases)
}

func TestEscapeCancelsResize(t *testing.T) {
	f := newFixture(t, 50, 50)

	f.send(down(50))
	assert.True(t, f.ctrl.HandleInput(escape()))

	assert.False(t, f.ctrl.IsDragging())
	assert.False(t, f.host.captured)
	assert.Equal(t, DraggingCancelled, f.rec.last().Kind)
}

func TestResizeOwnsPointerUntilRelease(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(down(50))
	// a second press on a column body must not start a reorder
	f.send(down(120))
	assert.True(t, f.ctrl.IsResizing())
	assert.False(t, f.ctrl.IsReordering())
	assert.Equal(t, Resizing, f.rec.last().Kind)
	assert.Equal(t, 0, f.rec.last().Column)

	// nor does a right button release end it
	f.send(InputEvent{Type: PointerUp, Button: ButtonRight, X: 70})
	assert.True(t, f.ctrl.IsResizing())
}

func TestEndResizingPanicsWhenIdle(t *testing.T) {
	f := newFixture(t, 50)
	assert.Panics(t, func() { f.ctrl.endResizing(10) })
	assert.Panics(t, func() { f.ctrl.cancelDragging() })
}
