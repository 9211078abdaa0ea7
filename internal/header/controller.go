package header

import (
	"io"
	"log/slog"
	"math"
)

// Style flags for the header as a whole
type Style uint8

const (
	// AllowReorder lets columns be dragged to a new position.
	AllowReorder Style = 1 << iota
)

const (
	defaultSeparatorMargin = 8
	dropMarkerWidth        = 4
)

// Options configures a Controller
type Options struct {
	Style Style

	// SeparatorMargin is the distance from a column's right edge, in device
	// independent units, within which the pointer is over the separator.
	SeparatorMargin int

	// Scale converts device independent units to pixels.
	Scale float64

	Logger *slog.Logger
}

// DefaultOptions returns options with reordering allowed and the standard
// separator sensitivity.
func DefaultOptions() Options {
	return Options{
		Style:           AllowReorder,
		SeparatorMargin: defaultSeparatorMargin,
		Scale:           1,
	}
}

// Controller implements the interactive behaviour of a multi-column header:
// layout, hit testing, hover, live resizing and drag to reorder.
//
// It is not safe for concurrent use. All methods must be called from the
// goroutine delivering input events.
type Controller struct {
	columns ColumnProvider
	host    Host
	handler Handler
	opts    Options
	logger  *slog.Logger

	count int
	order []int

	hover              int
	state              interaction
	scrollOffset       int
	wasSeparatorDClick bool
}

// NewController creates a new header controller with no columns
func NewController(columns ColumnProvider, host Host, handler Handler, opts Options) *Controller {
	if opts.SeparatorMargin <= 0 {
		opts.SeparatorMargin = defaultSeparatorMargin
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Controller{
		columns: columns,
		host:    host,
		handler: handler,
		opts:    opts,
		logger:  logger,
		order:   make([]int, 0),
		hover:   None,
		state:   idle{},
	}
}

// SetHandler replaces the notification handler
func (c *Controller) SetHandler(h Handler) {
	c.handler = h
}

// ColumnCount returns the number of columns
func (c *Controller) ColumnCount() int {
	return c.count
}

// SetColumnCount changes the number of columns. New logical indices are
// appended to the display order; removed ones are dropped from it.
func (c *Controller) SetColumnCount(n int) {
	if n < 0 {
		n = 0
	}

	if col, ok := c.draggedColumn(); ok && col >= n {
		c.host.ReleaseMouse()
		c.cancelDragging()
	}

	c.order = resizeOrder(c.order, n)
	c.count = n

	// a stale hover index would be used by the next pointer event
	if c.hover >= n {
		c.hover = None
	}

	c.host.Refresh()
}

// UpdateColumn must be called after the owner changes a column's width or
// visibility.
func (c *Controller) UpdateColumn(idx int) {
	c.refreshColsAfter(idx)
}

// Hover returns the logical index of the highlighted column, or None
func (c *Controller) Hover() int {
	return c.hover
}

// ScrollOffset returns the horizontal scroll offset
func (c *Controller) ScrollOffset() int {
	return c.scrollOffset
}

// ScrollHorz shifts the header horizontally by dx pixels
func (c *Controller) ScrollHorz(dx int) {
	c.scrollOffset += dx
	c.host.Refresh()
}

// SetScrollOffset sets the horizontal scroll offset
func (c *Controller) SetScrollOffset(offset int) {
	c.ScrollHorz(offset - c.scrollOffset)
}

func (c *Controller) separatorMargin() int {
	return int(math.Round(float64(c.opts.SeparatorMargin) * c.opts.Scale))
}

// notify sends ev to the handler. A nil handler leaves it unhandled.
func (c *Controller) notify(ev Event) Verdict {
	if c.handler == nil {
		return Unhandled
	}

	verdict := c.handler.HandleHeaderEvent(ev)
	if verdict == Veto {
		if ev.Kind.Vetoable() {
			c.logger.Debug("header event vetoed", "kind", ev.Kind.String(), "column", ev.Column)
		} else {
			// only the vetoable kinds can be rejected
			verdict = Accept
		}
	}
	return verdict
}

func (c *Controller) refreshCol(idx int) {
	_, h := c.host.ClientSize()
	c.host.RefreshRect(Rect{X: c.ColumnStart(idx), W: c.columns.Column(idx).Width, H: h})
}

func (c *Controller) refreshColIfNotNone(idx int) {
	if idx != None {
		c.refreshCol(idx)
	}
}

func (c *Controller) refreshColsAfter(idx int) {
	w, h := c.host.ClientSize()
	start := c.ColumnStart(idx)
	c.host.RefreshRect(Rect{X: start, W: w - start, H: h})
}
