package events

import (
	"log/slog"
	"slices"

	"hdrbar/internal/header"
)

// Logging logs every notification and its verdict at debug level
func Logging(logger *slog.Logger) Middleware {
	return MiddlewareFunc(func(ev header.Event, next header.Handler) header.Verdict {
		verdict := next.HandleHeaderEvent(ev)
		logger.Debug("header notification",
			"kind", ev.Kind.String(),
			"column", ev.Column,
			"width", ev.Width,
			"new_order", ev.NewOrder,
			"verdict", verdict.String())
		return verdict
	})
}

// PinnedColumns keeps the given logical columns at their display positions.
// Dragging a pinned column is vetoed, and so is any drop that would shift a
// pinned column. order reports the current display order.
func PinnedColumns(order func() []int, pinned ...int) Middleware {
	return MiddlewareFunc(func(ev header.Event, next header.Handler) header.Verdict {
		if len(pinned) == 0 {
			return next.HandleHeaderEvent(ev)
		}

		switch ev.Kind {
		case header.BeginReorder:
			if slices.Contains(pinned, ev.Column) {
				return header.Veto
			}

		case header.EndReorder:
			current := order()
			if !slices.Contains(current, ev.Column) {
				break
			}
			moved := header.MovedOrder(current, ev.Column, ev.NewOrder)
			for _, idx := range pinned {
				if slices.Index(current, idx) != slices.Index(moved, idx) {
					return header.Veto
				}
			}
		}

		return next.HandleHeaderEvent(ev)
	})
}

// MaxWidth stops resizing a column beyond max cells. A vetoed Resizing
// cancels the drag, so the column keeps the width it had before.
func MaxWidth(max int) Middleware {
	return MiddlewareFunc(func(ev header.Event, next header.Handler) header.Verdict {
		if max > 0 && (ev.Kind == header.Resizing || ev.Kind == header.BeginResize) && ev.Width > max {
			return header.Veto
		}
		return next.HandleHeaderEvent(ev)
	})
}
