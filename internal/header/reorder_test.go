package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderToEndAppends(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(down(0))
	require.True(t, f.ctrl.IsReordering())
	assert.True(t, f.host.captured)
	assert.Equal(t, CursorHand, f.host.cursor)

	// inside C, right half, C has no successor
	f.send(drag(140))
	assert.True(t, f.ctrl.HandleInput(up(140)))

	assert.Equal(t, []int{1, 2, 0}, f.ctrl.ColumnsOrder())
	assert.Equal(t, Event{Kind: EndReorder, Column: 0, NewOrder: 2}, f.rec.last())
	assert.False(t, f.ctrl.IsDragging())
	assert.False(t, f.host.captured)
	assert.Equal(t, CursorDefault, f.host.cursor)
}

func TestReorderDrops(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		to    int
		order []int
	}{
		{"first onto right half of second", 10, 80, []int{1, 0, 2}},
		{"first onto separator of second", 10, 97, []int{1, 0, 2}},
		{"first onto left half of third", 10, 110, []int{1, 0, 2}},
		{"last onto left half of first", 120, 10, []int{2, 0, 1}},
		{"last onto right half of first", 120, 30, []int{0, 2, 1}},
		{"middle onto left half of first", 70, 5, []int{1, 0, 2}},
		{"middle to the end", 70, 154, []int{0, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, 50, 50)

			f.send(down(tt.from), drag(tt.to))
			assert.True(t, f.ctrl.HandleInput(up(tt.to)))
			assert.Equal(t, tt.order, f.ctrl.ColumnsOrder())
		})
	}
}

func TestReorderNoOpDrops(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
	}{
		{"onto own right neighbour left half", 10, 60},
		{"onto itself", 10, 30},
		{"after the predecessor", 120, 80},
		{"beyond the last column", 10, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, 50, 50)

			f.send(down(tt.from), drag(tt.to))

			// still a drag gesture, so no click follows
			assert.True(t, f.ctrl.HandleInput(up(tt.to)))
			assert.Equal(t, []int{0, 1, 2}, f.ctrl.ColumnsOrder())
			assert.Equal(t, []EventKind{BeginReorder}, f.rec.kinds())
		})
	}
}

func TestReorderWithoutDisplacementIsClick(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(down(10), drag(30), drag(12))
	f.host.refreshes = 0
	f.ctrl.HandleInput(up(10))

	assert.Equal(t, []int{0, 1, 2}, f.ctrl.ColumnsOrder())
	assert.Equal(t, []EventKind{BeginReorder, Click}, f.rec.kinds())
	assert.Equal(t, 0, f.rec.last().Column)
	assert.Zero(t, f.host.refreshes)
}

func TestReorderSkipsFeedbackUntilMoved(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(down(10))
	ov := f.host.lastOverlay()
	assert.Empty(t, ov.phantoms)
	assert.Empty(t, ov.markers)

	f.send(drag(60))
	assert.Equal(t, []Rect{{X: 50, W: 50, H: 20}}, ov.phantoms)
	// left half of B: marker at B's start
	assert.Equal(t, []Rect{{X: 48, W: 4, H: 20}}, ov.markers)

	f.send(drag(90))
	assert.Equal(t, []Rect{{X: 80, W: 50, H: 20}}, ov.phantoms)
	// right half of B: marker at B's end
	assert.Equal(t, []Rect{{X: 98, W: 4, H: 20}}, ov.markers)

	f.send(drag(400))
	assert.Len(t, ov.phantoms, 1)
	assert.Empty(t, ov.markers)
}

func TestReorderOverlayReleasedOnEveryExit(t *testing.T) {
	exits := map[string]func(f *fixture){
		"drop":         func(f *fixture) { f.send(up(140)) },
		"click":        func(f *fixture) { f.send(up(10)) },
		"escape":       func(f *fixture) { f.send(escape()) },
		"capture lost": func(f *fixture) { f.ctrl.CaptureLost() },
		"count shrink": func(f *fixture) { f.ctrl.SetColumnCount(0) },
	}

	for name, exit := range exits {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 50, 50, 50)
			f.send(down(10), drag(140))
			require.Equal(t, 1, f.host.liveOverlays)

			exit(f)

			assert.False(t, f.ctrl.IsDragging())
			assert.Zero(t, f.host.liveOverlays)
			assert.True(t, f.host.lastOverlay().released)
		})
	}
}

func TestReorderCancel(t *testing.T) {
	f := newFixture(t, 50, 50, 50)

	f.send(down(10), drag(140), escape())

	assert.Equal(t, []int{0, 1, 2}, f.ctrl.ColumnsOrder())
	assert.Equal(t, Event{Kind: DraggingCancelled, Column: 0}, f.rec.last())
	assert.False(t, f.host.captured)
	assert.Equal(t, CursorDefault, f.host.cursor)
}

func TestEndReorderVeto(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.rec.veto[EndReorder] = true

	f.send(down(10), drag(140), up(140))

	assert.Equal(t, []int{0, 1, 2}, f.ctrl.ColumnsOrder())
	assert.Equal(t, []EventKind{BeginReorder, EndReorder}, f.rec.kinds())
}

func TestBeginReorderVeto(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.rec.veto[BeginReorder] = true

	f.send(down(10))
	assert.False(t, f.ctrl.IsReordering())
	assert.False(t, f.host.captured)
	assert.Empty(t, f.host.overlays)

	f.send(drag(140), up(140))
	assert.Equal(t, []int{0, 1, 2}, f.ctrl.ColumnsOrder())
}

func TestReorderRequiresPermission(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.cols[0].Reorderable = false

	f.send(down(10))
	assert.False(t, f.ctrl.IsReordering())

	opts := DefaultOptions()
	opts.Style = 0
	ctrl := NewController(newColumns(50, 50), newFakeHost(200), nil, opts)
	ctrl.SetColumnCount(2)

	ctrl.HandleInput(down(10))
	assert.False(t, ctrl.IsReordering())
}

func TestReorderWithHiddenColumn(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.cols[1].Hidden = true

	// C is drawn at [50, 100)
	f.send(down(10), drag(90), up(90))

	assert.Equal(t, []int{1, 2, 0}, f.ctrl.ColumnsOrder())
}

func TestReorderWithScrollOffset(t *testing.T) {
	f := newFixture(t, 50, 50, 50)
	f.ctrl.ScrollHorz(-30)

	// A is drawn at [-30, 20), C at [70, 120)
	f.send(down(0), drag(110), up(110))

	assert.Equal(t, []int{1, 2, 0}, f.ctrl.ColumnsOrder())
}

func TestMoveInOrder(t *testing.T) {
	assert.Equal(t, []int{1, 2, 0}, moveInOrder([]int{0, 1, 2}, 0, 2))
	assert.Equal(t, []int{2, 0, 1}, moveInOrder([]int{0, 1, 2}, 2, 0))
	assert.Equal(t, []int{0, 2, 1}, moveInOrder([]int{0, 1, 2}, 2, 1))
	assert.Equal(t, []int{1, 2, 0}, moveInOrder([]int{0, 1, 2}, 0, 9))

	order := []int{0, 1, 2}
	moveInOrder(order, 0, 2)
	assert.Equal(t, []int{0, 1, 2}, order)

	assert.Panics(t, func() { moveInOrder(order, 5, 0) })
}
