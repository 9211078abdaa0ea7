package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hdrbar/internal/header"
)

// headerRow is the screen row holding the header
const headerRow = 0

// mouseTranslator turns terminal mouse reports into header input events.
// Terminals report neither double clicks nor the button of a release, so
// both are reconstructed here.
type mouseTranslator struct {
	interval time.Duration
	now      func() time.Time

	pressed    header.Button
	lastButton header.Button
	lastX      int
	lastPress  time.Time
	overHeader bool
}

func newMouseTranslator(interval time.Duration) *mouseTranslator {
	return &mouseTranslator{
		interval: interval,
		now:      time.Now,
		pressed:  header.ButtonNone,
	}
}

func buttonOf(b tea.MouseButton) header.Button {
	switch b {
	case tea.MouseButtonLeft:
		return header.ButtonLeft
	case tea.MouseButtonRight:
		return header.ButtonRight
	case tea.MouseButtonMiddle:
		return header.ButtonMiddle
	case tea.MouseButtonNone:
		return header.ButtonNone
	default:
		return header.ButtonOther
	}
}

// translate converts msg. captured tells whether the header holds the
// pointer capture, in which case events off the header row still belong
// to it. ok is false when the event is not for the header.
func (t *mouseTranslator) translate(msg tea.MouseMsg, captured bool) (ev header.InputEvent, ok bool) {
	onHeader := msg.Y == headerRow
	ev.X = msg.X

	switch msg.Action {
	case tea.MouseActionPress:
		button := buttonOf(msg.Button)
		if button == header.ButtonOther || button == header.ButtonNone {
			return ev, false
		}
		if !onHeader && !captured {
			t.lastPress = time.Time{}
			return ev, false
		}

		t.pressed = button
		ev.Button = button
		ev.Type = header.PointerDown

		now := t.now()
		if button == t.lastButton && !t.lastPress.IsZero() &&
			now.Sub(t.lastPress) <= t.interval && abs(msg.X-t.lastX) <= 1 {
			ev.Type = header.PointerDoubleClick
			// a third press starts over
			t.lastPress = time.Time{}
		} else {
			t.lastPress = now
		}
		t.lastButton = button
		t.lastX = msg.X
		t.overHeader = onHeader
		return ev, true

	case tea.MouseActionRelease:
		button := t.pressed
		t.pressed = header.ButtonNone
		if button == header.ButtonNone {
			button = buttonOf(msg.Button)
		}
		if !onHeader && !captured {
			return ev, false
		}
		ev.Type = header.PointerUp
		ev.Button = button
		return ev, true

	case tea.MouseActionMotion:
		if onHeader || captured {
			t.overHeader = onHeader
			ev.Button = t.pressed
			ev.Type = header.PointerMove
			if t.pressed != header.ButtonNone {
				ev.Type = header.PointerDrag
			}
			return ev, true
		}

		// leaving the header row
		if t.overHeader {
			t.overHeader = false
			ev.Type = header.PointerLeave
			return ev, true
		}
	}

	return ev, false
}

// reset forgets any pressed button, for example after the capture was lost
func (t *mouseTranslator) reset() {
	t.pressed = header.ButtonNone
	t.lastPress = time.Time{}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
