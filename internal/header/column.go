package header

// None is the sentinel logical index meaning "no column".
const None = -1

// Align controls where a column label is placed inside its button
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// String returns the string representation of an Align
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Column is a read-only snapshot of one header column. The owner of the
// column set produces it; the controller never mutates it.
type Column struct {
	Title         string
	Icon          string
	Align         Align
	Width         int
	MinWidth      int // 0 means unconstrained
	Hidden        bool
	Resizable     bool
	Reorderable   bool
	SortKey       bool
	SortAscending bool
}

// Shown reports whether the column occupies space in the header.
func (c Column) Shown() bool {
	return !c.Hidden
}

// ColumnProvider gives the controller access to the columns it lays out,
// addressed by logical index.
type ColumnProvider interface {
	Column(idx int) Column
}

// ColumnProviderFunc adapts a function to ColumnProvider
type ColumnProviderFunc func(idx int) Column

// Column implements ColumnProvider
func (f ColumnProviderFunc) Column(idx int) Column {
	return f(idx)
}
