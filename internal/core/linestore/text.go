package linestore

import (
	"github.com/mattn/go-runewidth"
)

// FromText lays out plain text as a row of width columns in default
// colors. Wide runes take two cells, zero-width runes and control
// characters are dropped, and text past the right margin is cut.
func FromText(text string, width int) Row {
	return FromStyledText(text, width, DefaultColors, 0)
}

// FromStyledText is FromText with a single color and attribute applied to
// every cell that holds text.
func FromStyledText(text string, width int, color Color, attr Attr) Row {
	row := make(Row, 0, width)
	for _, r := range text {
		if r < ' ' || r == 0x7f {
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if len(row)+w > width {
			break
		}
		row = append(row, Cell{Value: r, Color: color, Attr: attr})
		if w == 2 {
			row = append(row, Cell{Value: 0, Color: color, Attr: attr})
		}
	}
	for len(row) < width {
		row = append(row, Blank(DefaultColors))
	}
	return row
}
