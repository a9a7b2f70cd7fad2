package input

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dimonomid/cellterm/log"
)

// TcellSource polls key events from a tcell screen. The screen must be
// initialized by the caller; Close doesn't finalize it.
type TcellSource struct {
	screen tcell.Screen
	logger *log.Logger
}

var _ Source = &TcellSource{}

func NewTcellSource(screen tcell.Screen, logger *log.Logger) *TcellSource {
	return &TcellSource{
		screen: screen,
		logger: logger.WithNamespaceAppended("tcell"),
	}
}

func (s *TcellSource) Start(ctx context.Context, p *Poller) error {
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil || ctx.Err() != nil {
				// Screen was finalized.
				return
			}

			if kev, ok := ev.(*tcell.EventKey); ok {
				if e, ok := TcellKeyEvent(kev); ok {
					p.Push(e)
				}
			}
		}
	}()

	return nil
}

func (s *TcellSource) Close() error {
	return nil
}

// TcellKeyEvent converts a tcell key event the same way ParseKeys converts
// raw input.
func TcellKeyEvent(kev *tcell.EventKey) (Event, bool) {
	switch kev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return Event{Quit: true}, true
	case tcell.KeyUp:
		return Event{Key: 'W'}, true
	case tcell.KeyLeft:
		return Event{Key: 'A'}, true
	case tcell.KeyDown:
		return Event{Key: 'S'}, true
	case tcell.KeyRight:
		return Event{Key: 'D'}, true
	case tcell.KeyRune:
		r := kev.Rune()
		if r < 0x80 {
			if _, ok := keyIndex(byte(r)); ok {
				return Event{Key: byte(r)}, true
			}
		}
	}

	return Event{}, false
}
