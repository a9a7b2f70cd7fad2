// Package screen implements a fixed-size buffer of character cells which is
// repainted onto the terminal in full on every Print.
//
// Every cell holds one glyph byte wrapped in color directives (see package
// markup). Cells are kept in markup form; the directives are rewritten into
// escape sequences on a copy of each cell at print time, so the buffer can be
// printed any number of times.
package screen

import (
	"bufio"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/mattn/go-runewidth"

	"github.com/dimonomid/cellterm/log"
	"github.com/dimonomid/cellterm/markup"
	"github.com/dimonomid/cellterm/mstring"
	"github.com/dimonomid/cellterm/vector"
)

const (
	MinSize = 1
	MaxSize = 255
)

// Params are the parameters for New.
type Params struct {
	Width  int
	Height int

	// Background is the glyph every cell is reset to by Clear.
	Background byte

	// Out is where Print (and New) write to.
	Out io.Writer

	// Logger is optional.
	Logger *log.Logger
}

// Pixel is one cell update for SetPixels.
type Pixel struct {
	X, Y  int
	Glyph byte
	Fg    markup.Color
	Bg    markup.Color
}

// Screen is a grid of Width x Height cells stored row-major. The zero Screen
// is uninitialized: SetPixel and Clear do nothing, and Print fails.
type Screen struct {
	params Params

	cells *vector.Vector[mstring.String]
	out   *bufio.Writer

	logger *log.Logger
}

// New creates a screen filled with the background glyph, and clears the
// physical terminal once by writing to params.Out.
func New(params Params) (*Screen, error) {
	if err := checkSize("width", params.Width); err != nil {
		return nil, errors.Trace(err)
	}
	if err := checkSize("height", params.Height); err != nil {
		return nil, errors.Trace(err)
	}
	if !validGlyph(params.Background) {
		return nil, errors.NotValidf("background glyph %q", params.Background)
	}
	if params.Out == nil {
		return nil, errors.NotValidf("nil output")
	}

	s := &Screen{
		params: params,
		cells:  vector.New[mstring.String](params.Width * params.Height),
		out:    bufio.NewWriter(params.Out),
		logger: params.Logger.WithNamespaceAppended("screen"),
	}

	bg := string(params.Background)
	for i := 0; i < params.Width*params.Height; i++ {
		s.cells.Append(mstring.Make(bg))
	}

	s.out.Write(csiHomeClear)
	s.out.WriteByte('\n')
	if err := s.out.Flush(); err != nil {
		return nil, errors.Annotatef(err, "clearing terminal")
	}

	s.logger.Infof("Initialized %dx%d, background %q", params.Width, params.Height, params.Background)

	return s, nil
}

func checkSize(name string, v int) error {
	if v < MinSize || v > MaxSize {
		return errors.NotValidf("%s %d (should be %d..%d)", name, v, MinSize, MaxSize)
	}

	return nil
}

// validGlyph returns whether c is a printable glyph taking exactly one
// terminal column.
func validGlyph(c byte) bool {
	return c < 0x80 && runewidth.RuneWidth(rune(c)) == 1
}

// Width returns the number of columns, or 0 for an uninitialized screen.
func (s *Screen) Width() int {
	return s.params.Width
}

// Height returns the number of rows, or 0 for an uninitialized screen.
func (s *Screen) Height() int {
	return s.params.Height
}

// Background returns the background glyph.
func (s *Screen) Background() byte {
	return s.params.Background
}

func (s *Screen) initialized() bool {
	return s.cells != nil && s.cells.Size() == s.params.Width*s.params.Height && s.cells.Size() > 0
}

func (s *Screen) cell(x, y int) *mstring.String {
	c, ok := s.cells.Get(y*s.params.Width + x)
	if !ok {
		return nil
	}

	return c
}

// FormatCell returns the markup for a cell holding glyph drawn with fg over
// bg. Colors are reset after the glyph.
func FormatCell(glyph byte, fg, bg markup.Color) string {
	var sb strings.Builder
	sb.WriteString(fg.FgDirective())
	sb.WriteString(bg.BgDirective())
	sb.WriteByte(glyph)
	sb.WriteString(markup.None.FgDirective())
	sb.WriteString(markup.None.BgDirective())
	return sb.String()
}

// SetPixel overwrites the cell at x, y. Coordinates outside of the screen
// and invalid glyphs are rejected with a NotValid error, leaving the screen
// unchanged.
func (s *Screen) SetPixel(x, y int, glyph byte, fg, bg markup.Color) error {
	if !s.initialized() {
		return errors.NotValidf("uninitialized screen")
	}
	if x < 0 || x >= s.params.Width || y < 0 || y >= s.params.Height {
		return errors.NotValidf("pixel %d,%d on a %dx%d screen", x, y, s.params.Width, s.params.Height)
	}
	if !validGlyph(glyph) {
		return errors.NotValidf("glyph %q", glyph)
	}

	c := s.cell(x, y)
	if err := c.ReplaceIndex(0, c.Len()-1, FormatCell(glyph, fg, bg)); err != nil {
		return errors.Annotatef(err, "setting pixel %d,%d", x, y)
	}

	return nil
}

// SetPixels sets all the given pixels. Invalid pixels are skipped; the first
// error is returned.
func (s *Screen) SetPixels(pixels []Pixel) error {
	var firstErr error
	for _, p := range pixels {
		if err := s.SetPixel(p.X, p.Y, p.Glyph, p.Fg, p.Bg); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return errors.Trace(firstErr)
}

// Clear resets every cell to the background glyph.
func (s *Screen) Clear() {
	if !s.initialized() {
		return
	}

	bg := string(s.params.Background)
	for i := range s.cells.Slice() {
		c, _ := s.cells.Get(i)
		fresh := mstring.Make(bg)
		mstring.Set(c, &fresh)
	}
}

// Print repaints the whole screen: it moves the cursor back up to the first
// row, then writes every row followed by "down one, back to column one". The
// cursor is hidden while printing. Output is flushed after every row.
func (s *Screen) Print() error {
	if !s.initialized() {
		return errors.NotValidf("printing uninitialized screen")
	}

	w := s.out

	w.Write(csiCursorHide)
	writeCursorUp(w, s.params.Height)

	for y := 0; y < s.params.Height; y++ {
		for x := 0; x < s.params.Width; x++ {
			c := s.cell(x, y).Clone()
			if err := markup.Rewrite(&c); err != nil {
				return errors.Annotatef(err, "rewriting cell %d,%d", x, y)
			}
			w.Write(c.Bytes())
		}

		w.Write(csiDown1)
		writeCursorBack(w, s.params.Width)

		if err := w.Flush(); err != nil {
			return errors.Annotatef(err, "printing row %d", y)
		}
	}

	w.Write(csiCursorShow)
	if err := w.Flush(); err != nil {
		return errors.Trace(err)
	}

	s.logger.Verbose3f("Printed %d rows", s.params.Height)

	return nil
}

// Cell returns the markup of the cell at x, y.
func (s *Screen) Cell(x, y int) (string, bool) {
	if !s.initialized() || x < 0 || x >= s.params.Width || y < 0 || y >= s.params.Height {
		return "", false
	}

	return s.cell(x, y).String(), true
}

// Rows returns the glyphs of every row, without any colors.
func (s *Screen) Rows() []string {
	if !s.initialized() {
		return nil
	}

	rows := make([]string, 0, s.params.Height)
	for y := 0; y < s.params.Height; y++ {
		var sb strings.Builder
		for x := 0; x < s.params.Width; x++ {
			sb.WriteString(markup.Visible(markup.RewriteString(s.cell(x, y).String())))
		}
		rows = append(rows, sb.String())
	}

	return rows
}

// Snapshot returns Rows joined with newlines.
func (s *Screen) Snapshot() string {
	return strings.Join(s.Rows(), "\n")
}

// Destroy releases all cells; the screen becomes uninitialized.
func (s *Screen) Destroy() {
	if s.cells == nil {
		return
	}

	for i := range s.cells.Slice() {
		c, _ := s.cells.Get(i)
		c.Destroy()
	}
	s.cells.Destroy()
	s.cells = nil
}

// RestoreTerminal shows the cursor and resets the colors. Meant to be called
// on exit, including on panics, after the cursor was possibly left hidden.
func RestoreTerminal(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.Write(csiReset)
	bw.Write(csiCursorShow)
	return errors.Trace(bw.Flush())
}
