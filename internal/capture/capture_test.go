package capture

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/backscroll/internal/core/linestore"
	"github.com/colonyops/backscroll/internal/core/search"
)

func newStore(t *testing.T, capacity, width int) *linestore.Store {
	t.Helper()
	s, err := linestore.New(capacity, width)
	require.NoError(t, err)
	return s
}

// history returns the filled history rows as text, oldest first.
func history(s *linestore.Store) []string {
	var out []string
	for i := s.Capacity() - s.Filled(); i < s.Capacity(); i++ {
		out = append(out, search.Text(s.Get(i)))
	}
	return out
}

func viewport(s *linestore.Store) []string {
	var out []string
	for i := 0; i < s.Height(); i++ {
		out = append(out, search.Text(s.Get(s.Capacity()+i)))
	}
	return out
}

func TestSplitter_Lines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "plain", input: "alpha\nbeta\n", want: []string{"alpha", "beta"}},
		{name: "crlf", input: "alpha\r\nbeta\r\n", want: []string{"alpha", "beta"}},
		{name: "carriage return overwrites", input: "10%\r50%\r100%\n", want: []string{"100%"}},
		{name: "escape sequences stripped", input: "\x1b[1;31mERROR\x1b[0m disk\n", want: []string{"ERROR disk"}},
		{name: "tabs expand", input: "a\tb\n", want: []string{"a       b"}},
		{name: "empty lines kept", input: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "wrapped at width", input: strings.Repeat("x", 25) + "\n", want: []string{strings.Repeat("x", 10), strings.Repeat("x", 10), "xxxxx"}},
		{name: "invalid utf-8 replaced", input: "a\xffb\n", want: []string{"a�b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, 10, 10)
			sp := NewSplitter(store, Options{})

			_, err := sp.Write([]byte(tt.input))
			require.NoError(t, err)
			sp.Flush()

			assert.Equal(t, tt.want, history(store))
		})
	}
}

func TestSplitter_ViewportAndHistory(t *testing.T) {
	store := newStore(t, 3, 20)
	sp := NewSplitter(store, Options{Viewport: 2})

	_, _ = sp.Write([]byte("l1\nl2\nl3\nl4\nl5\nl6\n"))

	assert.Equal(t, []string{"l2", "l3", "l4"}, history(store), "oldest line dropped")
	assert.Equal(t, []string{"l5", "l6"}, viewport(store))
	assert.Equal(t, 6, sp.Lines())
	assert.Equal(t, 6, sp.Rows())
}

func TestSplitter_SplitWrites(t *testing.T) {
	store := newStore(t, 5, 20)
	sp := NewSplitter(store, Options{})

	for _, chunk := range []string{"hel", "lo\nwor", "ld"} {
		_, _ = sp.Write([]byte(chunk))
	}
	assert.Equal(t, []string{"hello"}, history(store))

	sp.Flush()
	assert.Equal(t, []string{"hello", "world"}, history(store))

	sp.Flush()
	assert.Equal(t, 2, sp.Lines(), "second flush is a no-op")
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "ab  c", expandTabs("ab\tc", 4))
	assert.Equal(t, "    x", expandTabs("\tx", 4))
	assert.Equal(t, "日本    x", expandTabs("日本\tx", 8))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{""}, wrap("", 5))
	assert.Equal(t, []string{"abc"}, wrap("abc", 5))
	assert.Equal(t, []string{"日本", "語"}, wrap("日本語", 5))
}

func TestReadFrom(t *testing.T) {
	store := newStore(t, 5, 20)
	sp := NewSplitter(store, Options{})

	err := ReadFrom(context.Background(), iotest.OneByteReader(strings.NewReader("one\ntwo")), sp)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, history(store))
}

func TestReadFrom_Errors(t *testing.T) {
	t.Run("reader error", func(t *testing.T) {
		sp := NewSplitter(newStore(t, 5, 20), Options{})
		boom := errors.New("boom")
		err := ReadFrom(context.Background(), iotest.ErrReader(boom), sp)
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context", func(t *testing.T) {
		sp := NewSplitter(newStore(t, 5, 20), Options{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := ReadFrom(ctx, strings.NewReader("x\n"), sp)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestReadFile_Missing(t *testing.T) {
	sp := NewSplitter(newStore(t, 5, 20), Options{})
	err := ReadFile(context.Background(), t.TempDir()+"/nope.log", sp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open capture file")
}

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty capture needs a unix system")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no sh on PATH")
	}

	t.Run("captures output", func(t *testing.T) {
		store := newStore(t, 10, 40)
		sp := NewSplitter(store, Options{})

		var echo strings.Builder
		code, err := Run(context.Background(), RunOptions{
			Argv: []string{sh, "-c", "printf 'first\\nsecond\\n'"},
			Echo: &echo,
		}, sp)
		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.Equal(t, []string{"first", "second"}, history(store))
		assert.Contains(t, echo.String(), "first")
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		sp := NewSplitter(newStore(t, 10, 40), Options{})
		code, err := Run(context.Background(), RunOptions{Argv: []string{sh, "-c", "exit 3"}}, sp)
		require.NoError(t, err)
		assert.Equal(t, 3, code)
	})

	t.Run("empty argv", func(t *testing.T) {
		sp := NewSplitter(newStore(t, 10, 40), Options{})
		_, err := Run(context.Background(), RunOptions{}, sp)
		require.Error(t, err)
	})
}
