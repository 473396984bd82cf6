package linestore

// Attr is a bit set of display styles applied to a cell.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrUnderline
	AttrBlink
	AttrReverse
)

// Has reports whether all bits of a are set.
func (a Attr) Has(flag Attr) bool {
	return a&flag == flag
}

// DefaultColor selects the terminal's own foreground or background.
const DefaultColor int8 = -1

// Color holds ANSI color indexes (0-15) for a cell.
type Color struct {
	FG int8
	BG int8
}

// DefaultColors leaves both planes to the terminal.
var DefaultColors = Color{FG: DefaultColor, BG: DefaultColor}

// Cell is one screen position. A rune of width 2 is followed by a
// continuation cell whose Value is 0.
type Cell struct {
	Value rune
	Color Color
	Attr  Attr
}

// Blank returns an empty cell with the given colors.
func Blank(c Color) Cell {
	return Cell{Value: ' ', Color: c}
}

// IsContinuation reports whether the cell is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Value == 0
}

// Row is a fixed-width line of cells.
type Row []Cell

// BlankRow returns a row of width blank cells.
func BlankRow(width int) Row {
	r := make(Row, width)
	for i := range r {
		r[i] = Blank(DefaultColors)
	}
	return r
}

// fit pads or truncates r to width. Padding uses blank cells in the
// colors of the last cell so background fills extend to the margin.
func (r Row) fit(width int) Row {
	out := make(Row, width)
	n := copy(out, r)
	fill := DefaultColors
	if n > 0 {
		fill = r[n-1].Color
	}
	for i := n; i < width; i++ {
		out[i] = Blank(fill)
	}
	// a wide rune cut in half at the margin becomes a blank
	if n == width && width > 0 && len(r) > width && r[width].IsContinuation() {
		out[width-1] = Blank(out[width-1].Color)
	}
	return out
}
