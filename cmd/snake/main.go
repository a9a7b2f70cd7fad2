package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/spf13/pflag"

	"github.com/dimonomid/cellterm/frame"
	"github.com/dimonomid/cellterm/input"
	"github.com/dimonomid/cellterm/log"
	"github.com/dimonomid/cellterm/loop"
	"github.com/dimonomid/cellterm/mtrand"
	"github.com/dimonomid/cellterm/scorelog"
	"github.com/dimonomid/cellterm/screen"
	"github.com/dimonomid/cellterm/version"
)

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %s\n", err)
		os.Exit(1)
	}

	var (
		flagConfig   = pflag.StringP("config", "c", "", "Path to the yaml config file")
		flagSet      = pflag.StringArrayP("set", "s", nil, "Override a config option, as name=value; can be given multiple times. See --list-options")
		flagListOpts = pflag.Bool("list-options", false, "List all options which can be set with --set, and exit")
		flagScores   = pflag.String("scores", filepath.Join(homeDir, ".cellterm_snake_scores"), "File to keep the scores in; set to an empty string to not keep them")
		flagLogLevel = pflag.String("loglevel", "error", "Log level of ~/"+log.LogFilename+". Valid values are: error, warning, info, verbose1, verbose2 or verbose3")
		flagVersion  = pflag.Bool("version", false, "Print version and exit")
	)

	pflag.Parse()

	if *flagVersion {
		fmt.Print(version.VersionFullDescr("snake"))
		return
	}

	cfg := DefaultConfig()
	if *flagConfig != "" {
		loaded, err := LoadConfigFromFile(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	for _, setting := range *flagSet {
		if err := ApplySetting(&cfg, setting); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}

	if *flagListOpts {
		fmt.Print(OptionsHelp(&cfg))
		return
	}

	scores, err := scorelog.New(scorelog.ScoreLogParams{Filename: *flagScores})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scores: %s\n", err)
		os.Exit(1)
	}

	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	logLevel, err := log.ParseLevel(*flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --loglevel, try error, warning, info, verbose1, verbose2 or verbose3\n")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	score, err := run(ctx, settings, log.NewLogger(logLevel))
	if err != nil && errors.Cause(err) != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nYour score: %d\n", score)

	if best, ok := scores.Best(); ok && best.Score >= score {
		fmt.Printf("Best score: %d (%s)\n", best.Score, best.Time.Format(time.RFC822))
	} else {
		fmt.Println("That's a new best score!")
	}

	if err := scores.Add(score); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving the score: %s\n", err)
		os.Exit(1)
	}
}

// run sets up the screen and the input for the configured presenter, and
// plays until the user quits. It returns the final score.
func run(ctx context.Context, settings Settings, logger *log.Logger) (int, error) {
	seed := settings.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	logger.Infof("Starting with seed %d", seed)

	game := NewGame(settings, mtrand.New(seed), logger)

	var (
		out       io.Writer = os.Stdout
		presenter screen.Presenter
		source    input.Source
	)

	switch settings.Presenter {
	case PresenterTcell:
		ts, err := tcell.NewScreen()
		if err != nil {
			return 0, errors.Annotatef(err, "creating tcell screen")
		}
		if err := ts.Init(); err != nil {
			return 0, errors.Annotatef(err, "initializing tcell screen")
		}
		defer ts.Fini()

		// tcell owns the terminal, so the ANSI output is not used.
		out = io.Discard
		presenter = screen.NewTcellPresenter(ts)
		source = input.NewTcellSource(ts, logger)

	default:
		presenter = screen.ANSIPresenter{}
		source = input.NewRawSource(os.Stdin, logger)
		defer screen.RestoreTerminal(os.Stdout)
	}

	scr, err := screen.New(screen.Params{
		Width:      settings.Width,
		Height:     settings.Height,
		Background: settings.Background,
		Out:        out,
		Logger:     logger,
	})
	if err != nil {
		return 0, errors.Annotatef(err, "creating screen")
	}
	defer scr.Destroy()

	poller := input.NewPoller(0, logger)
	if err := source.Start(ctx, poller); err != nil {
		return 0, errors.Annotatef(err, "starting input")
	}
	defer source.Close()

	err = loop.Run(ctx, loop.Params{
		Screen:    scr,
		Gate:      frame.New(settings.FPS),
		Poller:    poller,
		Presenter: presenter,
		Frame:     game.Frame,
		Logger:    logger,
	})

	return game.Score(), errors.Trace(err)
}
