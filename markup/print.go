package markup

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dimonomid/cellterm/mstring"
	"github.com/juju/errors"
)

// Reserve tells Fprint how much room to take for the text.
type Reserve int

const (
	// ReserveNone prints the text as is, ignoring Spaces and Align.
	ReserveNone Reserve = iota
	// ReserveCut takes exactly Spaces columns, cutting the text if needed.
	ReserveCut
	// ReserveOverflow takes at least Spaces columns, more if the text is
	// longer.
	ReserveOverflow
)

// Align is the alignment of the text inside the reserved room.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignMiddle
)

// PrintOpts configure Fprint.
type PrintOpts struct {
	Reserve Reserve
	// Spaces is the number of columns to reserve; must not be negative.
	Spaces int
	Align  Align
}

const sgrReset = "\x1b[0m"

// Visible returns text with all escape sequences removed.
func Visible(text string) string {
	return ansi.Strip(text)
}

// Fprint rewrites the markup in a copy of s and writes it to w, padded or cut
// according to opts. Widths are counted in visible bytes, so directives take
// no room. If the text is cut, the style is reset after it.
func Fprint(w io.Writer, s *mstring.String, opts PrintOpts) error {
	if opts.Spaces < 0 {
		return errors.NotValidf("reserving %d spaces", opts.Spaces)
	}

	rewritten := s.Clone()
	if err := Rewrite(&rewritten); err != nil {
		return errors.Trace(err)
	}
	text := rewritten.String()

	if opts.Reserve == ReserveNone {
		_, err := io.WriteString(w, text)
		return errors.Trace(err)
	}

	visLen := len(Visible(text))

	maxLen := opts.Spaces
	if opts.Reserve == ReserveOverflow && visLen > maxLen {
		maxLen = visLen
	}

	startSpaces := 0
	switch opts.Align {
	case AlignMiddle:
		startSpaces = (maxLen - visLen) / 2
	case AlignRight:
		startSpaces = maxLen - visLen
	}
	if startSpaces < 0 {
		startSpaces = 0
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", startSpaces))

	room := maxLen - startSpaces
	written, styled := writeVisible(&sb, text, room)
	if written < visLen && styled {
		sb.WriteString(sgrReset)
	}

	if pad := room - written; pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Trace(err)
}

// writeVisible copies text to sb, keeping at most room visible bytes.
// Escape sequences are copied as is and don't count, including the ones
// after the last visible byte which fits, so that a trailing reset is not
// lost. It returns the number of visible bytes written and whether any escape
// sequence was copied.
func writeVisible(sb *strings.Builder, text string, room int) (written int, styled bool) {
	for i := 0; i < len(text); i++ {
		if text[i] == 0x1b && i+1 < len(text) && text[i+1] == '[' {
			j := i + 2
			for j < len(text) && (text[j] < 0x40 || text[j] > 0x7e) {
				j++
			}
			if j == len(text) {
				j--
			}

			sb.WriteString(text[i : j+1])
			styled = true
			i = j
			continue
		}

		if written < room {
			sb.WriteByte(text[i])
			written++
		}
	}

	return written, styled
}
