// Package frame limits how often a render loop produces frames.
package frame

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/juju/errors"
)

// Gate lets a frame through at most fps times a second. A Gate created with
// fps <= 0 is unlocked and lets every frame through.
//
// Gate is not safe for concurrent use; it's meant to be owned by the loop.
type Gate struct {
	clock    clock.Clock
	interval time.Duration

	// next is when the next frame is due; zero before the first frame.
	next   time.Time
	frames uint64
}

// New creates a gate driven by the wall clock.
func New(fps int) *Gate {
	return NewWithClock(fps, clock.New())
}

// NewWithClock creates a gate driven by the given clock; tests pass a mock.
func NewWithClock(fps int, c clock.Clock) *Gate {
	g := &Gate{clock: c}
	if fps > 0 {
		g.interval = time.Second / time.Duration(fps)
	}

	return g
}

// Unlocked returns whether the gate lets every frame through.
func (g *Gate) Unlocked() bool {
	return g.interval == 0
}

// Interval returns the minimum time between two frames; 0 if unlocked.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Frames returns how many frames were let through so far.
func (g *Gate) Frames() uint64 {
	return g.frames
}

// Ready returns whether a frame is due now, and if so, counts it: the next
// call returns true only after another interval has passed. It never blocks.
func (g *Gate) Ready() bool {
	if g.Unlocked() {
		g.frames++
		return true
	}

	now := g.clock.Now()
	if now.Before(g.next) {
		return false
	}

	g.next = now.Add(g.interval)
	g.frames++

	return true
}

// Wait blocks until a frame is due and counts it, like a Ready which returned
// true. It returns early with the context's error if ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}

		if g.Ready() {
			return nil
		}

		timer := g.clock.Timer(g.next.Sub(g.clock.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Trace(ctx.Err())
		case <-timer.C:
		}
	}
}
