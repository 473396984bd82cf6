// Package screen provides the window primitive the viewer draws through.
// A Window is an in-memory grid of rendered lines; Flush turns it into the
// frame a bubbletea View returns.
package screen

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/colonyops/backscroll/internal/core/linestore"
	"github.com/colonyops/backscroll/internal/core/styles"
)

// Geometry places a window on the terminal.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Colors are the window defaults used for cells with the terminal default
// color. Nil leaves the terminal default in place.
type Colors struct {
	FG, BG color.Color
}

// Direction selects which way Scroll moves the contents.
type Direction int

const (
	// ScrollUp moves every line up one row and blanks the bottom row.
	ScrollUp Direction = iota
	// ScrollDown moves every line down one row and blanks the top row.
	ScrollDown
)

// Window is a fixed-size grid of rendered lines.
type Window struct {
	geo     Geometry
	colors  Colors
	lines   []string
	cursorX int
	cursorY int
	closed  bool
}

// Open returns a blank window. Sizes below one are raised to one.
func Open(geo Geometry, colors Colors) *Window {
	geo.Width = max(geo.Width, 1)
	geo.Height = max(geo.Height, 1)

	w := &Window{geo: geo, colors: colors}
	w.clear()
	return w
}

// Close releases the window. With redraw set the contents are blanked so a
// later Flush yields an empty frame. Closing twice is a no-op.
func (w *Window) Close(redraw bool) {
	if w.closed {
		return
	}
	w.closed = true
	if redraw {
		w.clear()
	}
}

// Closed reports whether Close has been called.
func (w *Window) Closed() bool {
	return w.closed
}

func (w *Window) Width() int  { return w.geo.Width }
func (w *Window) Height() int { return w.geo.Height }

// Geometry returns the window placement.
func (w *Window) Geometry() Geometry {
	return w.geo
}

// DrawRow renders row at line y.
func (w *Window) DrawRow(y int, row linestore.Row) {
	w.DrawRowStyled(y, row, lipgloss.NewStyle())
}

// DrawRowInverse renders row at line y with foreground and background swapped.
func (w *Window) DrawRowInverse(y int, row linestore.Row) {
	w.DrawRowStyled(y, row, styles.MatchStyle)
}

// DrawRowStyled renders row at line y with overlay applied on top of each
// cell's own color and attributes.
func (w *Window) DrawRowStyled(y int, row linestore.Row, overlay lipgloss.Style) {
	if y < 0 || y >= w.geo.Height {
		return
	}
	w.lines[y] = w.renderRow(row, overlay)
}

// Print writes text on the cursor line starting at the cursor column. Text
// past the right edge is cut; the rest of the line is blanked.
func (w *Window) Print(text string) {
	w.PrintStyled(text, lipgloss.NewStyle())
}

// PrintStyled is Print with a style applied to the whole line.
func (w *Window) PrintStyled(text string, style lipgloss.Style) {
	if w.cursorY < 0 || w.cursorY >= w.geo.Height {
		return
	}
	text = strings.ReplaceAll(text, "\n", " ")
	line := strings.Repeat(" ", w.cursorX) + text
	line = runewidth.Truncate(line, w.geo.Width, "")
	line = runewidth.FillRight(line, w.geo.Width)
	w.lines[w.cursorY] = style.Render(line)
}

// PutLine stores an already rendered line at y. The caller is responsible
// for its width.
func (w *Window) PutLine(y int, rendered string) {
	if y < 0 || y >= w.geo.Height {
		return
	}
	w.lines[y] = rendered
}

// Scroll shifts the contents one line in dir.
func (w *Window) Scroll(dir Direction) {
	blank := w.blankLine()
	switch dir {
	case ScrollUp:
		copy(w.lines, w.lines[1:])
		w.lines[len(w.lines)-1] = blank
	case ScrollDown:
		copy(w.lines[1:], w.lines)
		w.lines[0] = blank
	}
}

// Locate moves the cursor, clamped to the window.
func (w *Window) Locate(x, y int) {
	w.cursorX = min(max(x, 0), w.geo.Width-1)
	w.cursorY = min(max(y, 0), w.geo.Height-1)
}

// Cursor returns the cursor position.
func (w *Window) Cursor() (x, y int) {
	return w.cursorX, w.cursorY
}

// Flush returns the window contents as a frame.
func (w *Window) Flush() string {
	return strings.Join(w.lines, "\n")
}

// Bell rings the terminal bell.
func Bell() tea.Cmd {
	return tea.Raw("\a")
}

func (w *Window) clear() {
	w.lines = make([]string, w.geo.Height)
	blank := w.blankLine()
	for i := range w.lines {
		w.lines[i] = blank
	}
}

func (w *Window) blankLine() string {
	return w.baseStyle().Render(strings.Repeat(" ", w.geo.Width))
}

func (w *Window) baseStyle() lipgloss.Style {
	s := lipgloss.NewStyle()
	if w.colors.FG != nil {
		s = s.Foreground(w.colors.FG)
	}
	if w.colors.BG != nil {
		s = s.Background(w.colors.BG)
	}
	return s
}

// renderRow groups cells into runs sharing color and attributes and renders
// each run once. Continuation cells are skipped; their wide rune already
// covers them.
func (w *Window) renderRow(row linestore.Row, overlay lipgloss.Style) string {
	var (
		b       strings.Builder
		run     strings.Builder
		cur     linestore.Cell
		cols    int
		started bool
	)

	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(w.cellStyle(cur, overlay).Render(run.String()))
		run.Reset()
	}

	for _, c := range row {
		if c.IsContinuation() {
			continue
		}
		rw := runewidth.RuneWidth(c.Value)
		if rw == 0 {
			rw = 1
		}
		if cols+rw > w.geo.Width {
			break
		}
		if !started || c.Color != cur.Color || c.Attr != cur.Attr {
			flush()
			cur = c
			started = true
		}
		if c.Value < ' ' {
			run.WriteRune(' ')
		} else {
			run.WriteRune(c.Value)
		}
		cols += rw
	}
	flush()

	if cols < w.geo.Width {
		pad := linestore.Blank(cur.Color)
		if !started {
			pad = linestore.Blank(linestore.DefaultColors)
		}
		b.WriteString(w.cellStyle(pad, overlay).Render(strings.Repeat(" ", w.geo.Width-cols)))
	}

	return b.String()
}

// cellStyle builds the style of one cell. Properties set on overlay win over
// the cell's own.
func (w *Window) cellStyle(c linestore.Cell, overlay lipgloss.Style) lipgloss.Style {
	s := w.baseStyle()
	if fg := styles.CellColor(c.Color.FG); fg != nil {
		s = s.Foreground(fg)
	}
	if bg := styles.CellColor(c.Color.BG); bg != nil {
		s = s.Background(bg)
	}

	if c.Attr.Has(linestore.AttrBold) {
		s = s.Bold(true)
	}
	if c.Attr.Has(linestore.AttrDim) {
		s = s.Faint(true)
	}
	if c.Attr.Has(linestore.AttrUnderline) {
		s = s.Underline(true)
	}
	if c.Attr.Has(linestore.AttrBlink) {
		s = s.Blink(true)
	}
	if c.Attr.Has(linestore.AttrReverse) {
		s = s.Reverse(true)
		if overlay.GetReverse() {
			// a reversed cell drawn inverse reads normally again
			overlay = overlay.Reverse(false)
		}
	}
	return overlay.Inherit(s)
}
