// Package input tracks the state of the letter keys A to Z from frame to
// frame.
//
// Terminals only report key presses, and auto-repeat them while a key is
// held; there are no key-up events. So a key is considered down during a
// frame iff at least one event for it arrived since the previous Update.
package input

import (
	"github.com/dimonomid/cellterm/log"
)

// KeyState is the per-frame state of a key.
type KeyState int

const (
	KeyNone KeyState = iota
	// KeyPressed means the key went down on this frame.
	KeyPressed
	// KeyHeld means the key was already down on the previous frame.
	KeyHeld
	// KeyReleased means the key went up on this frame.
	KeyReleased
)

var keyStateNames = map[KeyState]string{
	KeyNone:     "none",
	KeyPressed:  "pressed",
	KeyHeld:     "held",
	KeyReleased: "released",
}

func (s KeyState) String() string {
	if name, ok := keyStateNames[s]; ok {
		return name
	}

	return "invalid"
}

// NumKeys is the number of tracked keys, 'A' to 'Z'.
const NumKeys = 26

// DefaultBufSize is the event buffer size used by NewPoller when 0 is given.
const DefaultBufSize = 64

// Event is what sources push to the poller.
type Event struct {
	// Key is a letter, in either case; ignored if Quit is set.
	Key byte
	// Quit is set when the user asked to quit (Ctrl-C or Esc).
	Quit bool
}

// Poller collects events from sources, and turns them into key states once
// per frame. Push can be called from any goroutine; everything else must be
// called from the loop goroutine.
type Poller struct {
	events chan Event

	states [NumKeys]KeyState
	quit   bool

	logger *log.Logger
}

// NewPoller creates a poller which buffers up to bufSize events between two
// Update calls.
func NewPoller(bufSize int, logger *log.Logger) *Poller {
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}

	return &Poller{
		events: make(chan Event, bufSize),
		logger: logger.WithNamespaceAppended("input"),
	}
}

// Push hands an event to the poller without blocking. If the buffer is full,
// the event is dropped and false is returned.
func (p *Poller) Push(ev Event) bool {
	select {
	case p.events <- ev:
		return true
	default:
		p.logger.Warnf("Event buffer is full, dropping %+v", ev)
		return false
	}
}

// Pending returns the number of events which will be applied by the next
// Update.
func (p *Poller) Pending() int {
	return len(p.events)
}

// Update drains the pending events and advances every key state:
//
//	down: none, released -> pressed; pressed, held -> held
//	up:   pressed, held -> released; released, none -> none
func (p *Poller) Update() {
	var down [NumKeys]bool

drain:
	for {
		select {
		case ev := <-p.events:
			if ev.Quit {
				p.quit = true
				continue
			}

			if idx, ok := keyIndex(ev.Key); ok {
				down[idx] = true
			}
		default:
			break drain
		}
	}

	for i := range p.states {
		p.states[i] = nextState(p.states[i], down[i])
	}
}

func nextState(cur KeyState, down bool) KeyState {
	if down {
		switch cur {
		case KeyPressed, KeyHeld:
			return KeyHeld
		default:
			return KeyPressed
		}
	}

	switch cur {
	case KeyPressed, KeyHeld:
		return KeyReleased
	default:
		return KeyNone
	}
}

// State returns whether the key ch, a letter in either case, is in the
// given state. It's always false for non-letters.
func (p *Poller) State(ch byte, state KeyState) bool {
	idx, ok := keyIndex(ch)
	if !ok {
		return false
	}

	return p.states[idx] == state
}

// Quit returns whether a quit event was seen by any Update so far.
func (p *Poller) Quit() bool {
	return p.quit
}

func keyIndex(ch byte) (int, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return int(ch - 'A'), true
	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a'), true
	}

	return 0, false
}
