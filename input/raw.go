package input

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/juju/errors"
	"golang.org/x/term"

	"github.com/dimonomid/cellterm/log"
)

const (
	keyCtrlC = 0x03
	keyEsc   = 0x1b

	// escTimeout is how long to wait for the rest of an escape sequence
	// before taking the ESC as the Esc key.
	escTimeout = 50 * time.Millisecond
)

// Source feeds events to a poller from its own goroutine.
type Source interface {
	Start(ctx context.Context, p *Poller) error
	Close() error
}

// RawSource reads keys from a reader, typically stdin. If the reader is a
// terminal, it's switched to raw mode on Start, so that keys are delivered
// without waiting for Enter and aren't echoed; Close restores it.
type RawSource struct {
	r      io.Reader
	fd     int
	isTerm bool

	oldState *term.State

	logger *log.Logger
}

var _ Source = &RawSource{}

func NewRawSource(r io.Reader, logger *log.Logger) *RawSource {
	s := &RawSource{
		r:      r,
		fd:     -1,
		logger: logger.WithNamespaceAppended("raw"),
	}

	if f, ok := r.(*os.File); ok {
		s.fd = int(f.Fd())
		s.isTerm = term.IsTerminal(s.fd)
	}

	return s
}

func (s *RawSource) Start(ctx context.Context, p *Poller) error {
	if s.isTerm {
		old, err := term.MakeRaw(s.fd)
		if err != nil {
			return errors.Annotatef(err, "making terminal raw")
		}
		s.oldState = old
	}

	go s.run(ctx, p)

	return nil
}

// run parses the chunks delivered by read until ctx is done or the reader
// fails. An escape sequence split across chunks is kept pending until the
// rest of it arrives; if nothing follows within escTimeout, the pending bytes
// are taken as they are, so a lone ESC still means quit.
func (s *RawSource) run(ctx context.Context, p *Poller) {
	chunks := make(chan []byte)
	go s.read(ctx, chunks)

	var (
		parser   keyParser
		escTimer *time.Timer
		escC     <-chan time.Time
	)

	push := func(events []Event) {
		for _, ev := range events {
			p.Push(ev)
		}
	}

	stopTimer := func() {
		if escTimer != nil {
			escTimer.Stop()
			escTimer, escC = nil, nil
		}
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return

		case chunk, ok := <-chunks:
			stopTimer()
			if !ok {
				push(parser.flush())
				return
			}

			push(parser.feed(chunk))
			if parser.hasPending() {
				escTimer = time.NewTimer(escTimeout)
				escC = escTimer.C
			}

		case <-escC:
			escTimer, escC = nil, nil
			push(parser.flush())
		}
	}
}

// read delivers every chunk read from the reader to out, and closes out once
// the reader fails. A Read can't be interrupted, so after ctx is done this
// goroutine stays blocked until the next byte arrives or the reader is closed.
func (s *RawSource) read(ctx context.Context, out chan<- []byte) {
	defer close(out)

	buf := make([]byte, 256)

	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}

		if err != nil {
			if err != io.EOF {
				s.logger.Errorf("Reading input: %s", err.Error())
			}
			return
		}
	}
}

// Close restores the terminal mode, if it was changed by Start.
func (s *RawSource) Close() error {
	if s.oldState == nil {
		return nil
	}

	err := term.Restore(s.fd, s.oldState)
	s.oldState = nil

	return errors.Trace(err)
}

// ParseKeys turns a chunk of raw terminal input into events. Letters map to
// themselves, the arrow keys map to W, A, S and D, and Ctrl-C or a lone Esc
// mean quit. Everything else is ignored. The chunk is taken as complete: an
// escape sequence cut at its end is parsed as the Esc key.
func ParseKeys(chunk []byte) []Event {
	events, _ := parseKeys(chunk, true)
	return events
}

// parseKeys parses data like ParseKeys does; unless final is true, an escape
// sequence cut at the end of data is not parsed but returned as rest.
func parseKeys(data []byte, final bool) (events []Event, rest []byte) {
	for i := 0; i < len(data); i++ {
		c := data[i]

		switch {
		case c == keyCtrlC:
			events = append(events, Event{Quit: true})

		case c == keyEsc:
			if !final && escIncomplete(data[i:]) {
				return events, data[i:]
			}

			// Arrows are "ESC [ x" or "ESC O x"; anything else starting with
			// ESC is taken as the Esc key itself.
			if i+2 < len(data) && (data[i+1] == '[' || data[i+1] == 'O') {
				if key, ok := arrowKeys[data[i+2]]; ok {
					events = append(events, Event{Key: key})
				}
				i += 2
				continue
			}

			events = append(events, Event{Quit: true})

		default:
			if _, ok := keyIndex(c); ok {
				events = append(events, Event{Key: c})
			}
		}
	}

	return events, nil
}

// escIncomplete returns whether data, starting with ESC, might be the
// beginning of a longer sequence.
func escIncomplete(data []byte) bool {
	switch len(data) {
	case 1:
		return true
	case 2:
		return data[1] == '[' || data[1] == 'O'
	}

	return false
}

// keyParser parses a stream of chunks, keeping an escape sequence cut at the
// end of a chunk until the next one.
type keyParser struct {
	pending []byte
}

func (kp *keyParser) feed(chunk []byte) []Event {
	data := append(kp.pending, chunk...)

	events, rest := parseKeys(data, false)
	kp.pending = rest

	return events
}

// flush parses whatever is pending as complete.
func (kp *keyParser) flush() []Event {
	events, _ := parseKeys(kp.pending, true)
	kp.pending = nil

	return events
}

func (kp *keyParser) hasPending() bool {
	return len(kp.pending) > 0
}

var arrowKeys = map[byte]byte{
	'A': 'W',
	'B': 'S',
	'C': 'D',
	'D': 'A',
}
