package render

import (
	"strings"

	"hdrbar/internal/header"
)

type cellKind uint8

const (
	kindNormal cellKind = iota
	kindHover
	kindSpecial
	kindDisabled
	kindFiller
	kindPhantom
	kindMarker
)

type cell struct {
	ch   rune
	kind cellKind
}

// Canvas is a grid of terminal cells the header paints itself into. It
// implements header.Canvas; overlays are applied on top when rendering.
type Canvas struct {
	width, height    int
	originX, originY int
	cells            [][]cell
	styles           *Styles
}

// NewCanvas creates a new canvas of the given size in cells
func NewCanvas(width, height int, styles *Styles) *Canvas {
	c := &Canvas{styles: styles}
	c.Resize(width, height)
	return c
}

// Resize changes the canvas size and clears it
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	c.width, c.height = width, height
	c.cells = make([][]cell, height)
	for y := range c.cells {
		c.cells[y] = make([]cell, width)
	}
	c.Clear()
}

// Size returns the canvas size in cells
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// SetDeviceOrigin shifts everything drawn afterwards by (x, y)
func (c *Canvas) SetDeviceOrigin(x, y int) {
	c.originX, c.originY = x, y
}

// Clear fills the canvas with the filler style
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = cell{ch: ' ', kind: kindFiller}
		}
	}
}

// DrawHeaderButton draws one header button. Regular buttons end with a
// separator line; the filler segment (params == nil) is left blank.
func (c *Canvas) DrawHeaderButton(r header.Rect, state header.StateFlags, sort header.SortIcon, params *header.ButtonParams) {
	if r.W <= 0 {
		return
	}

	kind := kindForState(state)

	textW := r.W
	if params != nil {
		textW--
	}
	text := buttonText(params, sort, textW)

	textRow := r.Y + (r.H-1)/2
	for y := r.Y; y < r.Y+r.H; y++ {
		for i := 0; i < r.W; i++ {
			ch := ' '
			switch {
			case params != nil && i == r.W-1:
				ch = SeparatorGlyph
			case y == textRow && i < len(text):
				ch = text[i]
			}
			c.put(r.X+i+c.originX, y+c.originY, ch, kind)
		}
	}
}

func kindForState(state header.StateFlags) cellKind {
	switch {
	case state.Has(header.StateDisabled):
		return kindDisabled
	case state.Has(header.StateDirty):
		return kindFiller
	case state.Has(header.StateCurrent):
		return kindHover
	case state.Has(header.StateSpecial):
		return kindSpecial
	default:
		return kindNormal
	}
}

// put writes a cell at physical coordinates, clipping to the canvas
func (c *Canvas) put(x, y int, ch rune, kind cellKind) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = cell{ch: ch, kind: kind}
}

// ApplyOverlay draws the overlay contents on top of the canvas. Overlay
// rectangles are in physical coordinates and ignore the device origin.
func (c *Canvas) ApplyOverlay(o *Overlay) {
	if o == nil || o.Released() {
		return
	}

	for _, r := range o.phantoms {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				if x >= 0 && y >= 0 && x < c.width && y < c.height {
					c.cells[y][x].kind = kindPhantom
				}
			}
		}
	}

	// a cell is too coarse for a wide marker, draw a single bar at its centre
	for _, r := range o.markers {
		x := r.X + r.W/2
		for y := r.Y; y < r.Y+r.H; y++ {
			c.put(x, y, MarkerGlyph, kindMarker)
		}
	}
}

// Row returns the plain text of one row
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[y] {
		b.WriteRune(cl.ch)
	}
	return b.String()
}

// String returns the plain text of the canvas, one line per row
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for y := range rows {
		rows[y] = c.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Render returns the styled canvas. Consecutive cells of the same kind are
// rendered as one lipgloss run.
func (c *Canvas) Render() string {
	rows := make([]string, c.height)
	for y, line := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(line); x++ {
			if x < len(line) && line[x].kind == line[start].kind {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range line[start:x] {
				run = append(run, cl.ch)
			}
			b.WriteString(c.styles.forKind(line[start].kind).Render(string(run)))
			start = x
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}
