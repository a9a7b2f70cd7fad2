// gameloop is the smallest program built on the render loop: it draws a
// single pixel in the top left corner, and shows which letter keys are down.
// Press Esc or Ctrl-C to exit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/juju/errors"
	"github.com/spf13/pflag"

	"github.com/dimonomid/cellterm/frame"
	"github.com/dimonomid/cellterm/input"
	"github.com/dimonomid/cellterm/log"
	"github.com/dimonomid/cellterm/loop"
	"github.com/dimonomid/cellterm/markup"
	"github.com/dimonomid/cellterm/screen"
	"github.com/dimonomid/cellterm/version"
)

func main() {
	var (
		flagWidth      = pflag.IntP("width", "w", 40, "Screen width")
		flagHeight     = pflag.IntP("height", "h", 20, "Screen height")
		flagBackground = pflag.String("background", " ", "Background character")
		flagFPS        = pflag.Int("fps", 5, "Frames per second; use -1 to unlock the frame rate")
		flagLogLevel   = pflag.String("loglevel", "error", "Log level of ~/"+log.LogFilename+". Valid values are: error, warning, info, verbose1, verbose2 or verbose3")
		flagVersion    = pflag.Bool("version", false, "Print version and exit")
	)

	pflag.Parse()

	if *flagVersion {
		fmt.Print(version.VersionFullDescr("gameloop"))
		return
	}

	if len(*flagBackground) != 1 {
		fmt.Fprintf(os.Stderr, "Error: --background must be exactly one character\n")
		os.Exit(1)
	}

	logLevel, err := log.ParseLevel(*flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --loglevel, try error, warning, info, verbose1, verbose2 or verbose3\n")
		os.Exit(1)
	}
	logger := log.NewLogger(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	params := screen.Params{
		Width:      *flagWidth,
		Height:     *flagHeight,
		Background: (*flagBackground)[0],
		Out:        os.Stdout,
		Logger:     logger,
	}
	if err := run(ctx, params, *flagFPS, logger); err != nil && errors.Cause(err) != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, params screen.Params, fps int, logger *log.Logger) error {
	scr, err := screen.New(params)
	if err != nil {
		return errors.Annotatef(err, "creating screen")
	}
	defer scr.Destroy()
	defer screen.RestoreTerminal(params.Out)

	poller := input.NewPoller(0, logger)
	source := input.NewRawSource(os.Stdin, logger)
	if err := source.Start(ctx, poller); err != nil {
		return errors.Annotatef(err, "starting input")
	}
	defer source.Close()

	return errors.Trace(loop.Run(ctx, loop.Params{
		Screen: scr,
		Gate:   frame.New(fps),
		Poller: poller,
		Frame:  drawFrame,
		Logger: logger,
	}))
}

func drawFrame(scr *screen.Screen, in *input.Poller) error {
	if in.Quit() {
		return loop.ErrQuit
	}

	scr.SetPixel(0, 0, '#', markup.None, markup.None)

	// Letters which are down, in their state's color.
	x := 0
	for c := byte('A'); c <= 'Z' && scr.Height() > 1; c++ {
		switch {
		case in.State(c, input.KeyPressed):
			scr.SetPixel(x, 1, c, markup.LightGreen, markup.None)
		case in.State(c, input.KeyHeld):
			scr.SetPixel(x, 1, c, markup.Green, markup.None)
		default:
			continue
		}
		x++
	}

	return nil
}
