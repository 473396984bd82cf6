// Package linestore holds the rows a terminal has displayed: a fixed-capacity
// history ring of rows that scrolled off screen followed by the rows that are
// currently on screen.
//
// # Logical Index Space
//
// Rows are addressed by a single logical index in [0, Capacity()+Height()):
//
//   - index < Capacity(): history, oldest first
//   - index >= Capacity(): live viewport row index-Capacity()
//
// History slots that were never written read as blank rows. Because the ring
// is addressed from its next write slot, unwritten slots come first and the
// most recent history row always sits at Capacity()-1, directly above the
// viewport. Any index outside the space returns the sentinel row.
package linestore

import (
	"errors"
	"fmt"
)

// ErrInvalidWidth is returned when a store is created or resized with no columns.
var ErrInvalidWidth = errors.New("row width must be at least 1")

// SentinelRune marks rows past the end of the buffer.
const SentinelRune = '~'

// Store is a history ring plus the live viewport. It is not safe for
// concurrent use; producers must be quiesced while a viewer reads it.
type Store struct {
	width    int
	capacity int

	ring   []Row
	base   int // next write slot, also the physical slot of logical index 0
	filled int // history rows written, capped at capacity

	viewport []Row
	sentinel Row
}

// New creates a store with a history capacity of capacity rows (0 disables
// history) and rows of width columns.
func New(capacity, width int) (*Store, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("history capacity cannot be negative: %d", capacity)
	}
	if width < 1 {
		return nil, ErrInvalidWidth
	}

	s := &Store{
		width:    width,
		capacity: capacity,
		ring:     make([]Row, capacity),
	}
	s.sentinel = sentinelRow(width)
	return s, nil
}

// Get returns the row at a logical index. It never fails: indexes outside
// the buffer yield the sentinel row.
func (s *Store) Get(index int) Row {
	if index < 0 {
		return s.sentinel
	}

	if index < s.capacity {
		row := s.ring[s.physical(index)]
		if row == nil {
			return s.blank()
		}
		return row
	}

	index -= s.capacity
	if index >= len(s.viewport) {
		return s.sentinel
	}
	return s.viewport[index]
}

// Len is the size of the logical index space.
func (s *Store) Len() int {
	return s.capacity + len(s.viewport)
}

// Capacity is the configured number of history rows.
func (s *Store) Capacity() int {
	return s.capacity
}

// Filled is the number of history rows written so far, at most Capacity.
func (s *Store) Filled() int {
	return s.filled
}

// Height is the number of live viewport rows.
func (s *Store) Height() int {
	return len(s.viewport)
}

// Width is the column count shared by all rows.
func (s *Store) Width() int {
	return s.width
}

// Sentinel returns the out-of-range row.
func (s *Store) Sentinel() Row {
	return s.sentinel
}

// Resize rebuilds the sentinel for a new column count. Stored rows keep
// their width; Get callers render them clipped or padded.
func (s *Store) Resize(width int) error {
	if width < 1 {
		return fmt.Errorf("resize to %d columns: %w", width, ErrInvalidWidth)
	}
	s.width = width
	s.sentinel = sentinelRow(width)
	return nil
}

// PushHistory appends a row to the history ring, dropping the oldest row
// once the ring is full. With history disabled the row is discarded.
func (s *Store) PushHistory(row Row) {
	if s.capacity == 0 {
		return
	}
	s.ring[s.base] = row.fit(s.width)
	s.base = (s.base + 1) % s.capacity
	if s.filled < s.capacity {
		s.filled++
	}
}

// SetViewport replaces the live viewport rows.
func (s *Store) SetViewport(rows []Row) {
	s.viewport = make([]Row, len(rows))
	for i, r := range rows {
		s.viewport[i] = r.fit(s.width)
	}
}

// ScrollUp appends row to the bottom of the viewport. When the viewport
// already holds height rows its top row moves into history first.
func (s *Store) ScrollUp(row Row, height int) {
	if height < 1 {
		s.PushHistory(row)
		return
	}
	for len(s.viewport) >= height {
		s.PushHistory(s.viewport[0])
		s.viewport = s.viewport[1:]
	}
	s.viewport = append(s.viewport, row.fit(s.width))
}

// physical maps a history index to its ring slot.
func (s *Store) physical(index int) int {
	return (s.base + index) % s.capacity
}

func (s *Store) blank() Row {
	return BlankRow(s.width)
}

func sentinelRow(width int) Row {
	r := BlankRow(width)
	r[0].Value = SentinelRune
	return r
}
