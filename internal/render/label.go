package render

import (
	"strings"

	"hdrbar/internal/header"
)

const ellipsis = '…'

// Glyphs used when drawing header buttons
const (
	SeparatorGlyph = '│'
	MarkerGlyph    = '┃'
	SortUpGlyph    = '▲'
	SortDownGlyph  = '▼'
)

// buttonText lays out the text of a header button in exactly width cells:
// icon and label aligned as requested, truncated with an ellipsis, and the
// sort arrow kept at the right edge when there is room for it.
func buttonText(params *header.ButtonParams, sort header.SortIcon, width int) []rune {
	if width <= 0 {
		return nil
	}

	cells := []rune(strings.Repeat(" ", width))
	if params == nil {
		return cells
	}

	text := params.Label
	if params.Icon != "" {
		text = params.Icon + " " + text
	}

	// one cell of padding on each side, two more for the arrow
	avail := width - 2
	if sort != header.SortNone && width >= 4 {
		avail -= 2
		cells[width-2] = sortGlyph(sort)
	}
	if avail <= 0 {
		return cells
	}

	label := truncate([]rune(text), avail)

	offset := 1
	switch params.Align {
	case header.AlignCenter:
		offset += (avail - len(label)) / 2
	case header.AlignRight:
		offset += avail - len(label)
	}
	copy(cells[offset:], label)

	return cells
}

func truncate(text []rune, width int) []rune {
	if len(text) <= width {
		return text
	}
	if width == 1 {
		return []rune{ellipsis}
	}
	out := make([]rune, 0, width)
	out = append(out, text[:width-1]...)
	return append(out, ellipsis)
}

func sortGlyph(sort header.SortIcon) rune {
	if sort == header.SortUp {
		return SortUpGlyph
	}
	return SortDownGlyph
}

// AlignCell lays out a body cell the same way a header label is placed,
// so that data lines up with its column title.
func AlignCell(text string, width int, align header.Align) string {
	if width <= 0 {
		return ""
	}
	cells := buttonText(&header.ButtonParams{Label: text, Align: align}, header.SortNone, width)
	return string(cells)
}
