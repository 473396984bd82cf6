package screen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/backscroll/internal/core/linestore"
	"github.com/colonyops/backscroll/pkg/tuitest"
)

func rawLines(w *Window) []string {
	return strings.Split(tuitest.StripANSIKeepWidth(w.Flush()), "\n")
}

func TestOpen_Blank(t *testing.T) {
	w := Open(Geometry{Width: 6, Height: 3}, Colors{})

	lines := rawLines(w)
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, "      ", l)
	}
}

func TestOpen_ClampsGeometry(t *testing.T) {
	w := Open(Geometry{Width: 0, Height: -2}, Colors{})
	assert.Equal(t, 1, w.Width())
	assert.Equal(t, 1, w.Height())
}

func TestDrawRow(t *testing.T) {
	w := Open(Geometry{Width: 8, Height: 2}, Colors{})
	w.DrawRow(0, linestore.FromText("alpha", 8))
	w.DrawRowInverse(1, linestore.FromText("beta", 8))

	lines := rawLines(w)
	assert.Equal(t, "alpha   ", lines[0])
	assert.Equal(t, "beta    ", lines[1])
	assert.NotEqual(t, w.lines[0], w.lines[1], "inverse row carries styling")
}

func TestDrawRow_OutOfWindowIgnored(t *testing.T) {
	w := Open(Geometry{Width: 4, Height: 1}, Colors{})
	w.DrawRow(-1, linestore.FromText("x", 4))
	w.DrawRow(1, linestore.FromText("x", 4))
	assert.Equal(t, []string{"    "}, rawLines(w))
}

func TestDrawRow_WideAndWiderThanWindow(t *testing.T) {
	w := Open(Geometry{Width: 5, Height: 2}, Colors{})
	w.DrawRow(0, linestore.FromText("日本", 10))
	w.DrawRow(1, linestore.FromText("abcdefgh", 10))

	lines := rawLines(w)
	assert.Equal(t, "日本 ", lines[0])
	assert.Equal(t, "abcde", lines[1])
}

func TestScroll(t *testing.T) {
	w := Open(Geometry{Width: 3, Height: 3}, Colors{})
	for y, s := range []string{"a", "b", "c"} {
		w.DrawRow(y, linestore.FromText(s, 3))
	}

	w.Scroll(ScrollUp)
	assert.Equal(t, []string{"b  ", "c  ", "   "}, rawLines(w))

	w.Scroll(ScrollDown)
	w.Scroll(ScrollDown)
	assert.Equal(t, []string{"   ", "   ", "b  "}, rawLines(w))
}

func TestPrint(t *testing.T) {
	w := Open(Geometry{Width: 10, Height: 2}, Colors{})

	w.Locate(0, 1)
	w.Print("HISTORY: U=Up D=Down")
	assert.Equal(t, "HISTORY: U", rawLines(w)[1])

	w.Locate(2, 0)
	w.Print("hi\nthere")
	assert.Equal(t, "  hi there", rawLines(w)[0])
}

func TestLocate_Clamps(t *testing.T) {
	w := Open(Geometry{Width: 4, Height: 2}, Colors{})

	w.Locate(10, 10)
	x, y := w.Cursor()
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)

	w.Locate(-1, -1)
	x, y = w.Cursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestClose(t *testing.T) {
	w := Open(Geometry{Width: 3, Height: 1}, Colors{})
	w.DrawRow(0, linestore.FromText("abc", 3))

	w.Close(false)
	assert.True(t, w.Closed())
	assert.Equal(t, []string{"abc"}, rawLines(w))

	w.Close(true)
	assert.Equal(t, []string{"abc"}, rawLines(w), "second close is a no-op")

	w2 := Open(Geometry{Width: 3, Height: 1}, Colors{})
	w2.DrawRow(0, linestore.FromText("abc", 3))
	w2.Close(true)
	assert.Equal(t, []string{"   "}, rawLines(w2))
}

func TestBell(t *testing.T) {
	assert.NotNil(t, Bell())
}
