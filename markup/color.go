package markup

import (
	"strings"

	"github.com/juju/errors"
)

// Color is one of the named terminal colors. Every color maps to one
// directive letter: 'a'+c for the foreground and 'A'+c for the background.
type Color int

const (
	None Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	LightGray
	DarkGray
	LightRed
	LightGreen
	LightOrange
	LightBlue
	LightMagenta
	LightCyan
	White

	numColors
)

var colorNames = [numColors]string{
	None:         "none",
	Black:        "black",
	Red:          "red",
	Green:        "green",
	Yellow:       "yellow",
	Blue:         "blue",
	Magenta:      "magenta",
	Cyan:         "cyan",
	LightGray:    "light_gray",
	DarkGray:     "dark_gray",
	LightRed:     "light_red",
	LightGreen:   "light_green",
	LightOrange:  "light_orange",
	LightBlue:    "light_blue",
	LightMagenta: "light_magenta",
	LightCyan:    "light_cyan",
	White:        "white",
}

func (c Color) valid() bool {
	return c >= None && c < numColors
}

func (c Color) String() string {
	if !c.valid() {
		return "invalid"
	}

	return colorNames[c]
}

// FgLetter returns the foreground directive letter. Invalid colors map to
// None.
func (c Color) FgLetter() byte {
	if !c.valid() {
		c = None
	}

	return byte('a' + c)
}

// BgLetter returns the background directive letter. Invalid colors map to
// None.
func (c Color) BgLetter() byte {
	if !c.valid() {
		c = None
	}

	return byte('A' + c)
}

// FgDirective returns the directive setting c as the foreground, like "<c>".
func (c Color) FgDirective() string {
	return string([]byte{'<', c.FgLetter(), '>'})
}

// BgDirective returns the directive setting c as the background, like "<C>".
func (c Color) BgDirective() string {
	return string([]byte{'<', c.BgLetter(), '>'})
}

// ParseColor parses a color name like "red" or "light-blue". Dashes, spaces
// and case are not significant.
func ParseColor(name string) (Color, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)

	for c, cname := range colorNames {
		if cname == norm {
			return Color(c), nil
		}
	}

	return None, errors.NotValidf("color %q", name)
}
