package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortDirection(t *testing.T) {
	sort := SortState{Column: 2, Ascending: true}

	assert.Equal(t, SortAscending, sort.Direction(2))
	assert.Equal(t, SortNone, sort.Direction(1))
	assert.Equal(t, SortDescending, SortState{Column: 0}.Direction(0))
	assert.Equal(t, SortNone, SortState{Column: NoSort}.Direction(NoSort))
	assert.Equal(t, "descending", SortDescending.String())
}

func TestLayoutEqualIgnoresTimestamp(t *testing.T) {
	a := Layout{
		Name:    "default",
		Order:   []int{1, 0},
		Columns: []ColumnLayout{{Title: "A", Width: 10}, {Title: "B", Width: 12, Hidden: true}},
		Sort:    SortState{Column: NoSort},
	}
	b := a.Clone()
	b.UpdatedAt = time.Now()

	assert.True(t, a.Equal(b))

	b.Order[0] = 0
	assert.False(t, a.Equal(b))
	assert.Equal(t, []int{1, 0}, a.Order, "clone must not share the order")

	c := a.Clone()
	c.Columns[1].Width = 13
	assert.False(t, a.Equal(c))
}
