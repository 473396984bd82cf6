package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/backscroll/internal/core/linestore"
)

// countingSource records how often each index is read.
type countingSource struct {
	rows  []linestore.Row
	reads map[int]int
	width int
}

func newSource(width int, lines ...string) *countingSource {
	src := &countingSource{reads: map[int]int{}, width: width}
	for _, l := range lines {
		src.rows = append(src.rows, linestore.FromText(l, width))
	}
	return src
}

func (c *countingSource) Get(i int) linestore.Row {
	c.reads[i]++
	if i < 0 || i >= len(c.rows) {
		return linestore.BlankRow(c.width)
	}
	return c.rows[i]
}

func scenarioStore(t *testing.T) *linestore.Store {
	t.Helper()
	s, err := linestore.New(5, 20)
	require.NoError(t, err)
	for _, l := range []string{"alpha", "beta gamma", "delta", "error one", "zeta"} {
		s.PushHistory(linestore.FromText(l, 20))
	}
	s.SetViewport([]linestore.Row{
		linestore.FromText("omega", 20),
		linestore.FromText("psi", 20),
		linestore.FromText("chi", 20),
	})
	return s
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		row  linestore.Row
		want string
	}{
		{name: "trailing blanks stripped", row: linestore.FromText("abc   ", 10), want: "abc"},
		{name: "inner blanks kept", row: linestore.FromText("a  b", 10), want: "a  b"},
		{name: "blank row", row: linestore.BlankRow(5), want: ""},
		{name: "wide runes", row: linestore.FromText("日本 ok", 10), want: "日本 ok"},
		{
			name: "trailing control cells stripped",
			row:  linestore.Row{{Value: 'h'}, {Value: 'i'}, {Value: '\t'}, {Value: ' '}},
			want: "hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.row))
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		pattern       string
		caseSensitive bool
		want          bool
	}{
		{name: "case-insensitive upper text", text: "ERROR detected", pattern: "error", want: true},
		{name: "case-sensitive upper text", text: "ERROR detected", pattern: "error", caseSensitive: true, want: false},
		{name: "case-sensitive exact", text: "an error here", pattern: "error", caseSensitive: true, want: true},
		{name: "single character pattern", text: "aaaa", pattern: "a", want: false},
		{name: "empty pattern", text: "aaaa", pattern: "", want: false},
		{name: "single character text", text: "x", pattern: "xx", want: false},
		{name: "unicode folding", text: "STRASSE Über", pattern: "über", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.text, tt.pattern, tt.caseSensitive))
		})
	}
}

func TestFindNext_Scenario(t *testing.T) {
	s := scenarioStore(t)

	res := FindNext(s, s.Len(), 0, "error", true)
	assert.True(t, res.Found)
	assert.Equal(t, 3, res.Line)
	assert.False(t, res.Wrapped)
}

func TestFindNext_StartsAfterFrom(t *testing.T) {
	src := newSource(10, "xx one", "xx two", "xx three")

	res := FindNext(src, 3, 0, "xx", true)
	assert.Equal(t, 1, res.Line)

	res = FindNext(src, 3, 1, "xx", true)
	assert.Equal(t, 2, res.Line)
}

func TestFindNext_WrapsFromLastIndex(t *testing.T) {
	src := newSource(10, "needle", "hay", "hay", "hay")

	res := FindNext(src, 4, 3, "needle", true)
	require.True(t, res.Found)
	assert.Equal(t, 0, res.Line)
	assert.True(t, res.Wrapped)
}

func TestFindNext_StopsAtEnd(t *testing.T) {
	src := newSource(10, "hay", "needle", "hay", "hay", "hay")

	res := FindNext(src, 5, 2, "needle", true)
	assert.False(t, res.Found)
	assert.Equal(t, -1, res.Line)
	assert.False(t, res.Wrapped)
}

func TestFindNext_MatchBeforeFromNotFound(t *testing.T) {
	s := scenarioStore(t)

	res := FindNext(s, s.Len(), 4, "error", true)
	assert.False(t, res.Found, "rows above from are not revisited")
	assert.Equal(t, -1, res.Line)

	res = FindNext(s, s.Len(), 1, "error", true)
	require.True(t, res.Found)
	assert.Equal(t, 3, res.Line)
}

func TestFindNext_FromLineIsSkipped(t *testing.T) {
	src := newSource(10, "hay", "needle", "hay")

	res := FindNext(src, 3, 1, "needle", true)
	assert.False(t, res.Found)
}

func TestFindNext_NoMatchReads(t *testing.T) {
	tests := []struct {
		from int
		want []int
	}{
		{from: -1, want: []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{from: 0, want: []int{1, 2, 3, 4, 5, 6, 7}},
		{from: 3, want: []int{4, 5, 6, 7}},
		{from: 6, want: []int{7}},
		{from: 7, want: []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{from: 50, want: []int{0, 1, 2, 3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		src := newSource(10, "a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8")

		res := FindNext(src, 8, tt.from, "zz", false)
		assert.False(t, res.Found)
		assert.Equal(t, -1, res.Line)
		assert.Len(t, src.reads, len(tt.want), "from %d", tt.from)
		for _, i := range tt.want {
			assert.Equal(t, 1, src.reads[i], "from %d index %d", tt.from, i)
		}
	}
}

func TestFindNext_ResultAlwaysInRange(t *testing.T) {
	src := newSource(10, "match", "match", "match")

	for from := -5; from < 10; from++ {
		res := FindNext(src, 3, from, "match", true)
		require.True(t, res.Found)
		assert.GreaterOrEqual(t, res.Line, 0)
		assert.Less(t, res.Line, 3)
	}
}

func TestFindNext_ShortPatternNeverScans(t *testing.T) {
	src := newSource(10, "a", "a")

	res := FindNext(src, 2, 0, "a", true)
	assert.False(t, res.Found)
	assert.Empty(t, src.reads)
}

func TestHighlights(t *testing.T) {
	s := scenarioStore(t)

	got := Highlights(s, 2, 4, "ERROR", false)
	assert.Equal(t, []bool{false, true, false, false}, got)

	got = Highlights(s, 2, 4, "e", false)
	assert.Equal(t, []bool{false, false, false, false}, got)
}

func TestState(t *testing.T) {
	st := NewState(5)
	assert.False(t, st.Active())
	assert.Equal(t, NoHit, st.Hit())

	st.Set("abcdefgh", false)
	assert.Equal(t, "abcde", st.Pattern())
	assert.True(t, st.Active())
	assert.False(t, st.CaseSensitive())

	st.SetHit(4)
	assert.Equal(t, 4, st.Hit())

	st.Set("x", true)
	assert.False(t, st.Active())
	assert.Equal(t, NoHit, st.Hit(), "a new pattern forgets the hit")

	st.Set("ab", true)
	assert.True(t, st.Matches("xxabxx"))
	assert.False(t, st.Matches("xxABxx"))
}
