// Package cite selects an inclusive range of store lines and quotes it into
// an outbound byte sink.
package cite

import (
	"errors"
	"fmt"
)

// Phase is the state of a Selector.
type Phase int

const (
	Inactive Phase = iota
	SelectingStart
	SelectingEnd
	Committed
)

func (p Phase) String() string {
	switch p {
	case Inactive:
		return "inactive"
	case SelectingStart:
		return "selecting-start"
	case SelectingEnd:
		return "selecting-end"
	case Committed:
		return "committed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrReversedRange rejects an end line above the start line.
	ErrReversedRange = errors.New("citation end is before its start")
	// ErrNotCommitted is returned when emitting a range that is not complete.
	ErrNotCommitted = errors.New("citation range is not committed")
	// ErrInactive is returned when marking outside citation mode.
	ErrInactive = errors.New("citation mode is not active")
)

const unset = -1

// Selector tracks a citation range through its selection phases.
type Selector struct {
	phase Phase
	start int
	end   int
}

// NewSelector returns an inactive selector.
func NewSelector() Selector {
	return Selector{phase: Inactive, start: unset, end: unset}
}

// Phase returns the current phase.
func (s Selector) Phase() Phase {
	return s.phase
}

// Active reports whether citation mode is on.
func (s Selector) Active() bool {
	return s.phase == SelectingStart || s.phase == SelectingEnd
}

// Enter starts selecting a start line, discarding any prior range.
func (s *Selector) Enter() {
	s.phase = SelectingStart
	s.start = unset
	s.end = unset
}

// Toggle enters citation mode when inactive and leaves it, discarding any
// in-progress range, when active.
func (s *Selector) Toggle() {
	if s.Active() {
		s.reset()
		return
	}
	s.Enter()
}

// Mark records line as the start, then as the end of the range. An end
// above the start is rejected and leaves the selector unchanged.
func (s *Selector) Mark(line int) error {
	switch s.phase {
	case SelectingStart:
		s.start = line
		// Provisional end for Track and InRange only. Range reports
		// nothing until the end is marked.
		s.end = line
		s.phase = SelectingEnd
		return nil
	case SelectingEnd:
		if line < s.start {
			return fmt.Errorf("mark line %d with start %d: %w", line, s.start, ErrReversedRange)
		}
		s.end = line
		s.phase = Committed
		return nil
	default:
		return ErrInactive
	}
}

// Track moves the provisional end under the cursor while the end line is
// being picked.
func (s *Selector) Track(line int) {
	if s.phase == SelectingEnd {
		s.end = line
	}
}

// Cancel steps back one phase: an unfinished end returns to picking a
// start, picking a start leaves citation mode. Inactive is a no-op.
func (s *Selector) Cancel() {
	switch s.phase {
	case SelectingEnd:
		s.phase = SelectingStart
		s.start = unset
		s.end = unset
	case SelectingStart:
		s.reset()
	}
}

// Start returns the recorded start line, if any.
func (s Selector) Start() (int, bool) {
	return s.start, s.start != unset
}

// Range returns the committed range.
func (s Selector) Range() (start, end int, ok bool) {
	if s.phase != Committed {
		return unset, unset, false
	}
	return s.start, s.end, true
}

// InRange reports whether line falls inside the range being selected or
// already committed. An end above the start selects nothing.
func (s Selector) InRange(line int) bool {
	if s.start == unset || s.end == unset {
		return false
	}
	return line >= s.start && line <= s.end
}

func (s *Selector) reset() {
	s.phase = Inactive
	s.start = unset
	s.end = unset
}
