// cprint prints its arguments, or every line of stdin if there are no
// arguments, with the color markup rewritten into escape sequences.
//
//	cprint --reserve cut --spaces 20 --align right '<c>error<a>: disk full'
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/pflag"

	"github.com/dimonomid/cellterm/markup"
	"github.com/dimonomid/cellterm/mstring"
	"github.com/dimonomid/cellterm/version"
)

var reserveByName = map[string]markup.Reserve{
	"none":     markup.ReserveNone,
	"cut":      markup.ReserveCut,
	"overflow": markup.ReserveOverflow,
}

var alignByName = map[string]markup.Align{
	"left":   markup.AlignLeft,
	"right":  markup.AlignRight,
	"middle": markup.AlignMiddle,
}

func main() {
	var (
		flagReserve = pflag.StringP("reserve", "r", "none", "How to reserve room for the text: none, cut or overflow")
		flagSpaces  = pflag.IntP("spaces", "n", 0, "Number of columns to reserve")
		flagAlign   = pflag.StringP("align", "a", "left", "Alignment inside the reserved room: left, right or middle")
		flagStrip   = pflag.Bool("strip", false, "Drop the colors, only print the visible text")
		flagVersion = pflag.Bool("version", false, "Print version and exit")
	)

	pflag.Parse()

	if *flagVersion {
		fmt.Print(version.VersionFullDescr("cprint"))
		return
	}

	opts, err := parseOpts(*flagReserve, *flagSpaces, *flagAlign)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	var in io.Reader = os.Stdin
	if pflag.NArg() > 0 {
		in = strings.NewReader(strings.Join(pflag.Args(), " "))
	}

	if err := printLines(os.Stdout, in, opts, *flagStrip); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func parseOpts(reserve string, spaces int, align string) (markup.PrintOpts, error) {
	r, ok := reserveByName[reserve]
	if !ok {
		return markup.PrintOpts{}, errors.Errorf("invalid --reserve %q, try none, cut or overflow", reserve)
	}

	a, ok := alignByName[align]
	if !ok {
		return markup.PrintOpts{}, errors.Errorf("invalid --align %q, try left, right or middle", align)
	}

	if spaces < 0 {
		return markup.PrintOpts{}, errors.Errorf("--spaces must not be negative")
	}

	return markup.PrintOpts{Reserve: r, Spaces: spaces, Align: a}, nil
}

// printLines prints every line read from in, each followed by a newline.
func printLines(w io.Writer, in io.Reader, opts markup.PrintOpts, strip bool) error {
	bw := bufio.NewWriter(w)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := mstring.Make(scanner.Text())

		if strip {
			visible := markup.Visible(markup.RewriteString(line.String()))
			line = mstring.Make(visible)
		}

		if err := markup.Fprint(bw, &line, opts); err != nil {
			return errors.Trace(err)
		}
		bw.WriteByte('\n')
	}

	if err := scanner.Err(); err != nil {
		return errors.Annotatef(err, "reading input")
	}

	return errors.Trace(bw.Flush())
}
