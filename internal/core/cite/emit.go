package cite

import (
	"github.com/colonyops/backscroll/internal/core/outbound"
	"github.com/colonyops/backscroll/internal/core/search"
)

// DefaultPrefix starts every quoted line.
const DefaultPrefix = "> "

// DefaultLineEnding ends every quoted line, as typed by a user at a terminal.
const DefaultLineEnding = "\r"

// Format controls how quoted lines are written.
type Format struct {
	Prefix     string
	LineEnding string
}

// DefaultFormat is the quoting used when no configuration overrides it.
func DefaultFormat() Format {
	return Format{Prefix: DefaultPrefix, LineEnding: DefaultLineEnding}
}

// Emit writes the committed range to sink, one quoted line per row in
// increasing order, and returns the selector to Inactive. Prefix and line
// ending are sent as-is; row text is trimmed and passed through enc.
func (s *Selector) Emit(src search.Source, sink outbound.Sink, enc outbound.Encoder, f Format) (int, error) {
	start, end, ok := s.Range()
	if !ok {
		return 0, ErrNotCommitted
	}
	defer s.reset()

	n := 0
	for line := start; line <= end; line++ {
		outbound.SendString(sink, f.Prefix)
		for _, r := range search.Text(src.Get(line)) {
			for _, b := range enc.Encode(r) {
				sink.Send(b)
			}
		}
		outbound.SendString(sink, f.LineEnding)
		n++
	}
	return n, nil
}
