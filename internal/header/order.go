package header

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidOrder is returned when a display order is not a permutation of
// the logical column indices.
var ErrInvalidOrder = errors.New("invalid column order")

// ValidateOrder checks that order is a permutation of [0, n)
func ValidateOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: got %d indices for %d columns", ErrInvalidOrder, len(order), n)
	}

	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidOrder, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: index %d repeated", ErrInvalidOrder, idx)
		}
		seen[idx] = true
	}

	return nil
}

// ColumnsOrder returns a copy of the display order
func (c *Controller) ColumnsOrder() []int {
	return slices.Clone(c.order)
}

// SetColumnsOrder replaces the display order. The order must be a
// permutation of the logical indices.
func (c *Controller) SetColumnsOrder(order []int) error {
	if err := ValidateOrder(order, c.count); err != nil {
		return err
	}

	c.order = slices.Clone(order)
	c.host.Refresh()
	return nil
}

// ColumnPos returns the display position of a logical index, or None
func (c *Controller) ColumnPos(idx int) int {
	return slices.Index(c.order, idx)
}

// ColumnAt returns the logical index shown at a display position, or None
func (c *Controller) ColumnAt(pos int) int {
	if pos < 0 || pos >= len(c.order) {
		return None
	}
	return c.order[pos]
}

// MoveColumn moves a logical index to a new display position
func (c *Controller) MoveColumn(idx, pos int) {
	c.order = moveInOrder(c.order, idx, pos)
	c.host.Refresh()
}

// MovedOrder returns the display order that moving idx to pos would produce,
// leaving order untouched.
func MovedOrder(order []int, idx, pos int) []int {
	return moveInOrder(order, idx, pos)
}

// moveInOrder returns a copy of order with idx removed and reinserted at pos
func moveInOrder(order []int, idx, pos int) []int {
	moved := slices.Clone(order)

	from := slices.Index(moved, idx)
	if from == None {
		panic(fmt.Sprintf("header: column %d is not in the display order", idx))
	}
	moved = slices.Delete(moved, from, from+1)

	if pos > len(moved) {
		pos = len(moved)
	}
	if pos < 0 {
		pos = 0
	}
	return slices.Insert(moved, pos, idx)
}

// resizeOrder adapts order to n columns keeping the relative order of the
// surviving indices and appending new ones.
func resizeOrder(order []int, n int) []int {
	resized := make([]int, 0, n)
	for _, idx := range order {
		if idx < n {
			resized = append(resized, idx)
		}
	}
	for idx := len(order); idx < n; idx++ {
		resized = append(resized, idx)
	}
	return resized
}
