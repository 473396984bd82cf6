// Package capture turns raw terminal output into rows of a line store. It
// is a plain producer: escape sequences are stripped, lines are split on
// newlines and wrapped at the row width, nothing else is interpreted.
package capture

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/colonyops/backscroll/internal/core/linestore"
)

// DefaultTabWidth is the tab stop distance when none is configured.
const DefaultTabWidth = 8

// Options controls how output becomes rows.
type Options struct {
	// TabWidth is the distance between tab stops.
	TabWidth int
	// Viewport is how many of the newest rows stay in the live viewport.
	// Older rows move into history.
	Viewport int
}

// Splitter is an io.Writer that feeds complete lines into a store.
type Splitter struct {
	store   *linestore.Store
	opts    Options
	pending []byte
	lines   int
	rows    int
}

// NewSplitter returns a splitter writing into store.
func NewSplitter(store *linestore.Store, opts Options) *Splitter {
	if opts.TabWidth < 1 {
		opts.TabWidth = DefaultTabWidth
	}
	return &Splitter{store: store, opts: opts}
}

// Write implements io.Writer. It never fails.
func (s *Splitter) Write(p []byte) (int, error) {
	s.pending = append(s.pending, p...)
	for {
		i := bytes.IndexByte(s.pending, '\n')
		if i < 0 {
			break
		}
		s.emit(s.pending[:i])
		s.pending = s.pending[i+1:]
	}
	// keep the backing array from growing without bound
	if len(s.pending) == 0 {
		s.pending = nil
	}
	return len(p), nil
}

// Flush emits a trailing line that has no newline.
func (s *Splitter) Flush() {
	if len(s.pending) == 0 {
		return
	}
	s.emit(s.pending)
	s.pending = nil
}

// Lines returns the number of source lines seen.
func (s *Splitter) Lines() int {
	return s.lines
}

// Rows returns the number of rows written to the store, counting wrapped
// continuation rows.
func (s *Splitter) Rows() int {
	return s.rows
}

func (s *Splitter) emit(raw []byte) {
	s.lines++
	text := ansi.Strip(strings.ToValidUTF8(string(raw), "\uFFFD"))
	text = strings.TrimSuffix(text, "\r")
	if i := strings.LastIndexByte(text, '\r'); i >= 0 {
		// carriage return redraws the line from the left margin
		text = text[i+1:]
	}
	text = expandTabs(text, s.opts.TabWidth)

	for _, chunk := range wrap(text, s.store.Width()) {
		s.store.ScrollUp(linestore.FromText(chunk, s.store.Width()), s.opts.Viewport)
		s.rows++
	}
}

func expandTabs(text string, tabWidth int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	var (
		b   strings.Builder
		col int
	)
	for _, r := range text {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// wrap cuts text into pieces at most width columns wide. An empty line
// yields one empty piece.
func wrap(text string, width int) []string {
	if runewidth.StringWidth(text) <= width {
		return []string{text}
	}

	var (
		out []string
		b   strings.Builder
		col int
	)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > width && col > 0 {
			out = append(out, b.String())
			b.Reset()
			col = 0
		}
		b.WriteRune(r)
		col += w
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
