package screen

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"

	"github.com/dimonomid/cellterm/log"
	"github.com/dimonomid/cellterm/markup"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestScreen(t *testing.T, w, h int, bg byte) (*Screen, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	s, err := New(Params{Width: w, Height: h, Background: bg, Out: &buf})
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return s, &buf
}

func TestNewClearsTerminal(t *testing.T) {
	s, buf := newTestScreen(t, 3, 1, '.')

	assert.Equal(t, "\x1b[1;1H\x1b[2J\n", buf.String())
	assert.Equal(t, []string{"..."}, s.Rows())
	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, byte('.'), s.Background())
}

func TestNewInvalidParams(t *testing.T) {
	type testCase struct {
		params Params
	}

	out := &bytes.Buffer{}

	testCases := []testCase{
		testCase{params: Params{Width: 0, Height: 1, Background: '.', Out: out}},
		testCase{params: Params{Width: 256, Height: 1, Background: '.', Out: out}},
		testCase{params: Params{Width: 1, Height: -1, Background: '.', Out: out}},
		testCase{params: Params{Width: 1, Height: 256, Background: '.', Out: out}},
		testCase{params: Params{Width: 1, Height: 1, Background: '\t', Out: out}},
		testCase{params: Params{Width: 1, Height: 1, Background: 0, Out: out}},
		testCase{params: Params{Width: 1, Height: 1, Background: 0xe9, Out: out}},
		testCase{params: Params{Width: 1, Height: 1, Background: '.'}},
	}

	for i, tc := range testCases {
		s, err := New(tc.params)
		assert.True(t, errors.IsNotValid(err), "testCase #%d (%+v): %v", i, tc, err)
		assert.Nil(t, s, "testCase #%d", i)
	}

	assert.Equal(t, 0, out.Len())

	s, err := New(Params{Width: 255, Height: 255, Background: ' ', Out: out})
	assert.NoError(t, err)
	assert.Len(t, s.Rows(), 255)
}

func TestSetPixelAndClear(t *testing.T) {
	s, _ := newTestScreen(t, 3, 1, '.')

	assert.NoError(t, s.SetPixel(1, 0, '#', markup.Red, markup.None))
	assert.Equal(t, []string{".#."}, s.Rows())

	cell, ok := s.Cell(1, 0)
	assert.True(t, ok)
	assert.Equal(t, "<c><A>#<a><A>", cell)

	// Overwriting replaces the whole cell.
	assert.NoError(t, s.SetPixel(1, 0, '@', markup.Green, markup.Black))
	cell, _ = s.Cell(1, 0)
	assert.Equal(t, "<d><B>@<a><A>", cell)

	s.Clear()
	assert.Equal(t, []string{"..."}, s.Rows())
	cell, _ = s.Cell(1, 0)
	assert.Equal(t, ".", cell)
}

func TestSetPixelOutOfRange(t *testing.T) {
	type testCase struct {
		x, y  int
		glyph byte
	}

	testCases := []testCase{
		testCase{x: 3, y: 0, glyph: '#'},
		testCase{x: -1, y: 0, glyph: '#'},
		testCase{x: 0, y: 2, glyph: '#'},
		testCase{x: 0, y: -1, glyph: '#'},
		testCase{x: 0, y: 0, glyph: '\n'},
	}

	s, _ := newTestScreen(t, 3, 2, '.')

	for i, tc := range testCases {
		err := s.SetPixel(tc.x, tc.y, tc.glyph, markup.Red, markup.None)
		assert.True(t, errors.IsNotValid(err), "testCase #%d (%+v): %v", i, tc, err)
		assert.Equal(t, []string{"...", "..."}, s.Rows(), "testCase #%d (%+v)", i, tc)
	}
}

func TestSetPixels(t *testing.T) {
	s, _ := newTestScreen(t, 4, 2, ' ')

	err := s.SetPixels([]Pixel{
		{X: 0, Y: 0, Glyph: 'a'},
		{X: 9, Y: 9, Glyph: 'x'},
		{X: 3, Y: 1, Glyph: 'b', Fg: markup.Yellow},
	})
	assert.True(t, errors.IsNotValid(err), "%v", err)
	assert.Equal(t, []string{"a   ", "   b"}, s.Rows())
	assert.Equal(t, "a   \n   b", s.Snapshot())
}

func TestGlyphsLookingLikeDirectives(t *testing.T) {
	s, _ := newTestScreen(t, 4, 1, '.')

	assert.NoError(t, s.SetPixel(0, 0, '<', markup.Red, markup.None))
	assert.NoError(t, s.SetPixel(1, 0, '>', markup.Red, markup.None))
	assert.NoError(t, s.SetPixel(2, 0, 'c', markup.Red, markup.None))

	assert.Equal(t, []string{"<>c."}, s.Rows())
}

func TestPrint(t *testing.T) {
	s, buf := newTestScreen(t, 3, 2, '.')
	buf.Reset()

	assert.NoError(t, s.SetPixel(1, 0, '#', markup.Red, markup.None))
	assert.NoError(t, s.Print())

	want := "\x1b[?25l" + "\x1b[2A" +
		".\x1b[31m\x1b[49m#\x1b[39m\x1b[49m." + "\x1b[1B\x1b[3D" +
		"..." + "\x1b[1B\x1b[3D" +
		"\x1b[?25h"
	assert.Equal(t, want, buf.String())

	// Cells keep their markup, so printing again gives the same output.
	buf.Reset()
	assert.NoError(t, s.Print())
	assert.Equal(t, want, buf.String())
	assert.Equal(t, ".#.\n...", s.Snapshot())
}

func TestPrintBrightBackground(t *testing.T) {
	s, buf := newTestScreen(t, 1, 1, '.')
	buf.Reset()

	assert.NoError(t, s.SetPixel(0, 0, 'o', markup.White, markup.LightBlue))
	assert.NoError(t, s.Print())
	assert.True(t, strings.Contains(buf.String(), "\x1b[97m\x1b[104mo\x1b[39m\x1b[49m"), buf.String())
}

func TestUninitializedScreen(t *testing.T) {
	var s Screen

	assert.Error(t, s.SetPixel(0, 0, '#', markup.Red, markup.None))
	s.Clear()
	assert.True(t, errors.IsNotValid(s.Print()))
	assert.Nil(t, s.Rows())
	assert.Equal(t, "", s.Snapshot())
	_, ok := s.Cell(0, 0)
	assert.False(t, ok)

	s2, _ := newTestScreen(t, 2, 2, '.')
	s2.Destroy()
	assert.True(t, errors.IsNotValid(s2.Print()))
	s2.Destroy()
}

func TestRestoreTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, RestoreTerminal(&buf))
	assert.Equal(t, "\x1b[0m\x1b[?25h", buf.String())
}

func TestTcellPresenter(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if !assert.NoError(t, sim.Init()) {
		return
	}
	defer sim.Fini()
	sim.SetSize(3, 1)

	s, _ := newTestScreen(t, 3, 1, '.')
	assert.NoError(t, s.SetPixel(1, 0, '#', markup.Red, markup.None))

	var p Presenter = NewTcellPresenter(sim)
	assert.NoError(t, p.Present(s))

	for x, want := range ".#." {
		mainc, _, style, _ := sim.GetContent(x, 0)
		assert.Equal(t, want, mainc, "x=%d", x)

		fg, _, _ := style.Decompose()
		if x == 1 {
			assert.NotEqual(t, tcell.ColorDefault, fg)
		} else {
			assert.Equal(t, tcell.ColorDefault, fg, "x=%d", x)
		}
	}

	var zero Screen
	assert.Error(t, p.Present(&zero))
}

func TestWriteInt(t *testing.T) {
	type testCase struct {
		n    int
		want string
	}

	testCases := []testCase{
		testCase{n: -5, want: "0"},
		testCase{n: 7, want: "7"},
		testCase{n: 42, want: "42"},
		testCase{n: 255, want: "255"},
		testCase{n: 65025, want: "65025"},
	}

	for i, tc := range testCases {
		var buf bytes.Buffer
		s, _ := newTestScreen(t, 1, 1, '.')
		s.out.Reset(&buf)
		writeInt(s.out, tc.n)
		assert.NoError(t, s.out.Flush())
		assert.Equal(t, tc.want, buf.String(), "testCase #%d (%+v)", i, tc)
	}
}
