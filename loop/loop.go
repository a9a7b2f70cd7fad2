// Package loop runs the frame-stepped render loop.
package loop

import (
	"context"

	"github.com/juju/errors"

	"github.com/dimonomid/cellterm/frame"
	"github.com/dimonomid/cellterm/input"
	"github.com/dimonomid/cellterm/log"
	"github.com/dimonomid/cellterm/screen"
)

// ErrQuit can be returned by a FrameFunc to stop the loop; Run then returns
// nil.
var ErrQuit = errors.New("quit")

// FrameFunc draws one frame onto the already cleared screen. Input was
// updated right before the call.
type FrameFunc func(scr *screen.Screen, in *input.Poller) error

// Params are the parameters for Run.
type Params struct {
	Screen *screen.Screen
	Gate   *frame.Gate
	Poller *input.Poller

	// Presenter defaults to screen.ANSIPresenter.
	Presenter screen.Presenter

	Frame FrameFunc

	Logger *log.Logger
}

// Run runs frames until ctx is done or the frame function returns an error.
// Every frame, once the gate lets it through, goes: clear the screen, update
// the input, call the frame function, present the screen.
//
// If the frame function returns ErrQuit, Run returns nil; when ctx is done,
// Run returns its error.
func Run(ctx context.Context, params Params) error {
	if params.Screen == nil || params.Gate == nil || params.Poller == nil || params.Frame == nil {
		return errors.NotValidf("loop params without screen, gate, poller or frame func")
	}

	presenter := params.Presenter
	if presenter == nil {
		presenter = screen.ANSIPresenter{}
	}

	logger := params.Logger.WithNamespaceAppended("loop")
	logger.Infof("Starting, frame interval %s", params.Gate.Interval())

	for {
		if err := params.Gate.Wait(ctx); err != nil {
			logger.Infof("Stopping after %d frames: %s", params.Gate.Frames(), err.Error())
			return errors.Trace(err)
		}

		params.Screen.Clear()
		params.Poller.Update()

		if err := params.Frame(params.Screen, params.Poller); err != nil {
			if errors.Cause(err) == ErrQuit {
				logger.Infof("Quit after %d frames", params.Gate.Frames())
				return nil
			}

			return errors.Annotatef(err, "frame %d", params.Gate.Frames())
		}

		if err := presenter.Present(params.Screen); err != nil {
			return errors.Annotatef(err, "presenting frame %d", params.Gate.Frames())
		}
	}
}
