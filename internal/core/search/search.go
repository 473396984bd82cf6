// Package search finds text in the rows of a line store.
package search

import (
	"strings"

	"github.com/colonyops/backscroll/internal/core/linestore"
)

// MinPatternLen is the shortest pattern that takes part in a search.
// Single characters match nearly every row and are treated as no pattern.
const MinPatternLen = 2

// Source is the read side of a line store.
type Source interface {
	Get(index int) linestore.Row
}

// Result reports the outcome of FindNext.
type Result struct {
	Line    int  // matching logical index, -1 when not found
	Found   bool // a row matched
	Wrapped bool // the scan restarted at index 0
}

// Text materializes a row as a string: continuation cells are skipped and
// the trailing run of blank or control cells is stripped.
func Text(row linestore.Row) string {
	end := len(row)
	for end > 0 && (row[end-1].Value <= ' ' || row[end-1].IsContinuation()) {
		end--
	}

	var sb strings.Builder
	sb.Grow(end)
	for _, c := range row[:end] {
		if c.IsContinuation() {
			continue
		}
		sb.WriteRune(c.Value)
	}
	return sb.String()
}

// Usable reports whether pattern is long enough to search for.
func Usable(pattern string) bool {
	return len([]rune(pattern)) >= MinPatternLen
}

// Contains reports whether text holds pattern. Texts and patterns shorter
// than MinPatternLen never match. Without caseSensitive both sides are
// upper-cased with Unicode case mapping before comparing.
func Contains(text, pattern string, caseSensitive bool) bool {
	if !Usable(pattern) || len([]rune(text)) < MinPatternLen {
		return false
	}
	if caseSensitive {
		return strings.Contains(text, pattern)
	}
	return strings.Contains(strings.ToUpper(text), strings.ToUpper(pattern))
}

// RowMatches reports whether the trimmed text of row holds pattern.
func RowMatches(row linestore.Row, pattern string, caseSensitive bool) bool {
	return Contains(Text(row), pattern, caseSensitive)
}

// FindNext scans for the first row after from that holds pattern. Indexes
// from+1 .. total-1 are checked and the scan stops at the end of the
// buffer. Only when from+1 is already past the end does the scan restart at
// 0, which sets Result.Wrapped.
func FindNext(src Source, total, from int, pattern string, caseSensitive bool) Result {
	res := Result{Line: -1}
	if total <= 0 || !Usable(pattern) {
		return res
	}

	start := from + 1
	if start >= total || start < 0 {
		start = 0
		res.Wrapped = true
	}

	for line := start; line < total; line++ {
		if RowMatches(src.Get(line), pattern, caseSensitive) {
			res.Line = line
			res.Found = true
			return res
		}
	}

	res.Wrapped = false
	return res
}

// Highlights returns, for each of height rows starting at top, whether the
// row should be drawn inverse for pattern. It reads src only.
func Highlights(src Source, top, height int, pattern string, caseSensitive bool) []bool {
	out := make([]bool, height)
	if !Usable(pattern) {
		return out
	}
	for y := range out {
		out[y] = RowMatches(src.Get(top+y), pattern, caseSensitive)
	}
	return out
}
