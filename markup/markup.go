// Package markup rewrites inline color directives into terminal escape
// sequences.
//
// A directive is '<', one ASCII letter and '>'. Letters 'a' to 'q' set the
// foreground and 'A' to 'Q' set the background; see Color for their meaning.
// Anything else in angle brackets is left as literal text. There is no
// nesting and no escaping.
package markup

import (
	"strconv"

	"github.com/dimonomid/cellterm/mstring"
	"github.com/dimonomid/cellterm/vector"
	"github.com/juju/errors"
)

const (
	DirectiveOpen  = '<'
	DirectiveClose = '>'
)

// Span is a pair of matching bracket indexes.
type Span struct {
	Open  int
	Close int
}

// sequences holds the pre-built SGR sequence for every directive letter;
// empty for letters which are not directives.
var sequences [128]string

func init() {
	for c := 0; c < len(sequences); c++ {
		if code := Code(byte(c)); code != 0 {
			sequences[c] = "\x1b[" + strconv.Itoa(code) + "m"
		}
	}
}

// Code returns the SGR parameter for the directive letter c, or 0 if c is not
// a directive letter.
func Code(c byte) int {
	switch {
	case c == 'a':
		return 39
	case c >= 'b' && c <= 'i':
		return 30 + int(c-'b')
	case c >= 'j' && c <= 'q':
		return 90 + int(c-'j')

	case c == 'A':
		return 49
	case c >= 'B' && c <= 'I':
		return 40 + int(c-'B')
	case c >= 'J' && c <= 'Q':
		return 100 + int(c-'J')
	}

	return 0
}

// Sequence returns the escape sequence for the directive letter c, or an
// empty string if c is not a directive letter.
func Sequence(c byte) string {
	if c >= 128 {
		return ""
	}

	return sequences[c]
}

// Expressions returns the spans of all open/close pairs in s, in order. An
// opener is superseded by a later opener until a closer matches it; a closer
// without an opener is ignored. If s lacks either bracket, the result is
// empty.
func Expressions(open, close byte, s *mstring.String) *vector.Vector[Span] {
	spans := vector.New[Span](0)

	if s.ContainsByte(open) == -1 || s.ContainsByte(close) == -1 {
		return spans
	}

	foundStart := false
	cur := 0
	for i, c := range s.Bytes() {
		switch c {
		case open:
			foundStart = true
			cur = i
		case close:
			if !foundStart {
				continue
			}

			spans.Append(Span{Open: cur, Close: i})
			foundStart = false
		}
	}

	return spans
}

// Rewrite replaces every directive in s with its escape sequence, in place,
// left to right. Spans are found once on the original text, so every
// replacement shifts the spans after it; the shift is tracked in a signed
// offset.
func Rewrite(s *mstring.String) error {
	spans := Expressions(DirectiveOpen, DirectiveClose, s)

	offset := 0
	for _, sp := range spans.Slice() {
		if sp.Close-sp.Open != 2 {
			continue
		}

		begin, end := sp.Open+offset, sp.Close+offset

		code := Code(s.Bytes()[begin+1])
		if code == 0 {
			continue
		}

		if err := s.ReplaceIndex(begin, end, Sequence(s.Bytes()[begin+1])); err != nil {
			return errors.Annotatef(err, "rewriting directive at %d", sp.Open)
		}

		// "<x>" is 3 bytes; "\x1b[NNm" is 5 and "\x1b[NNNm" is 6.
		if code >= 100 {
			offset += 3
		} else {
			offset += 2
		}
	}

	return nil
}

// RewriteString is a convenience wrapper around Rewrite for plain strings.
func RewriteString(text string) string {
	s := mstring.Make(text)
	// Spans are validated against the string they came from, so Rewrite
	// can't fail here.
	_ = Rewrite(&s)
	return s.String()
}
