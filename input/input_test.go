package input

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dimonomid/cellterm/log"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestPollerTransitions(t *testing.T) {
	type step struct {
		// keys is the input seen before the Update.
		keys string
		want KeyState
	}

	type testCase struct {
		descr string
		steps []step
	}

	testCases := []testCase{
		testCase{
			descr: "tap",
			steps: []step{
				{keys: "w", want: KeyPressed},
				{keys: "", want: KeyReleased},
				{keys: "", want: KeyNone},
				{keys: "", want: KeyNone},
			},
		},
		testCase{
			descr: "hold",
			steps: []step{
				{keys: "W", want: KeyPressed},
				{keys: "ww", want: KeyHeld},
				{keys: "w", want: KeyHeld},
				{keys: "", want: KeyReleased},
				{keys: "", want: KeyNone},
			},
		},
		testCase{
			descr: "press again right after release",
			steps: []step{
				{keys: "w", want: KeyPressed},
				{keys: "", want: KeyReleased},
				{keys: "w", want: KeyPressed},
			},
		},
		testCase{
			descr: "other keys don't matter",
			steps: []step{
				{keys: "asd1!", want: KeyNone},
				{keys: "", want: KeyNone},
			},
		},
	}

	for i, tc := range testCases {
		p := NewPoller(0, nil)
		for j, st := range tc.steps {
			for _, k := range []byte(st.keys) {
				assert.True(t, p.Push(Event{Key: k}))
			}
			p.Update()

			assert.True(t, p.State('W', st.want), "testCase #%d (%s), step #%d", i, tc.descr, j)
			assert.True(t, p.State('w', st.want), "testCase #%d (%s), step #%d", i, tc.descr, j)
			assert.Equal(t, 0, p.Pending())
		}
	}
}

func TestPollerStateNonLetters(t *testing.T) {
	p := NewPoller(4, nil)
	p.Push(Event{Key: '1'})
	p.Update()

	assert.False(t, p.State('1', KeyPressed))
	assert.False(t, p.State('1', KeyNone))
	assert.False(t, p.State('[', KeyNone))
	assert.True(t, p.State('Z', KeyNone))
}

func TestPollerQuit(t *testing.T) {
	p := NewPoller(4, nil)
	assert.False(t, p.Quit())

	p.Push(Event{Quit: true, Key: 'q'})
	assert.False(t, p.Quit())

	p.Update()
	assert.True(t, p.Quit())
	assert.True(t, p.State('q', KeyNone))

	p.Update()
	assert.True(t, p.Quit())
}

func TestPollerFullBuffer(t *testing.T) {
	p := NewPoller(2, nil)
	assert.True(t, p.Push(Event{Key: 'a'}))
	assert.True(t, p.Push(Event{Key: 'b'}))
	assert.False(t, p.Push(Event{Key: 'c'}))

	p.Update()
	assert.True(t, p.State('a', KeyPressed))
	assert.True(t, p.State('b', KeyPressed))
	assert.True(t, p.State('c', KeyNone))
}

func TestParseKeys(t *testing.T) {
	type testCase struct {
		in   string
		want []Event
	}

	testCases := []testCase{
		testCase{in: "", want: nil},
		testCase{in: "wasd", want: []Event{{Key: 'w'}, {Key: 'a'}, {Key: 's'}, {Key: 'd'}}},
		testCase{in: "1 \r\n", want: nil},
		testCase{in: "\x03", want: []Event{{Quit: true}}},
		testCase{in: "\x1b", want: []Event{{Quit: true}}},
		testCase{in: "\x1b[A\x1b[B\x1b[C\x1b[D", want: []Event{{Key: 'W'}, {Key: 'S'}, {Key: 'D'}, {Key: 'A'}}},
		testCase{in: "\x1bOA", want: []Event{{Key: 'W'}}},
		testCase{in: "\x1b[3~q", want: []Event{{Key: 'q'}}},
	}

	for i, tc := range testCases {
		assert.Equal(t, tc.want, ParseKeys([]byte(tc.in)), "testCase #%d (%q)", i, tc.in)
	}
}

func TestRawSource(t *testing.T) {
	p := NewPoller(0, nil)
	src := NewRawSource(strings.NewReader("tt\x1b[A"), nil)

	assert.NoError(t, src.Start(context.Background(), p))
	assert.Eventually(t, func() bool { return p.Pending() == 3 }, 5*time.Second, time.Millisecond)

	p.Update()
	assert.True(t, p.State('T', KeyPressed))
	assert.True(t, p.State('W', KeyPressed))
	assert.False(t, p.Quit())

	// Not a terminal, so there is nothing to restore.
	assert.NoError(t, src.Close())
}

func TestKeyParserSplitChunks(t *testing.T) {
	type testCase struct {
		chunks []string
		want   []Event
		// wantPending is whether bytes are still pending after the last chunk.
		wantPending bool
		// wantFlushed are the events from flushing after the last chunk.
		wantFlushed []Event
	}

	testCases := []testCase{
		testCase{chunks: []string{"\x1b", "[A"}, want: []Event{{Key: 'W'}}},
		testCase{chunks: []string{"w\x1b[", "Cd"}, want: []Event{{Key: 'w'}, {Key: 'D'}, {Key: 'd'}}},
		testCase{chunks: []string{"\x1bO", "B"}, want: []Event{{Key: 'S'}}},
		testCase{
			chunks:      []string{"a\x1b"},
			want:        []Event{{Key: 'a'}},
			wantPending: true,
			wantFlushed: []Event{{Quit: true}},
		},
		testCase{chunks: []string{"\x1bx"}, want: []Event{{Quit: true}, {Key: 'x'}}},
		testCase{chunks: []string{"\x1b[3~", "q"}, want: []Event{{Key: 'q'}}},
	}

	for i, tc := range testCases {
		var kp keyParser
		var got []Event
		for _, chunk := range tc.chunks {
			got = append(got, kp.feed([]byte(chunk))...)
		}

		assert.Equal(t, tc.want, got, "testCase #%d (%q)", i, tc.chunks)
		assert.Equal(t, tc.wantPending, kp.hasPending(), "testCase #%d (%q)", i, tc.chunks)
		assert.Equal(t, tc.wantFlushed, kp.flush(), "testCase #%d (%q)", i, tc.chunks)
		assert.False(t, kp.hasPending(), "testCase #%d (%q)", i, tc.chunks)
	}
}

func TestRawSourceSplitArrow(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	p := NewPoller(0, nil)
	src := NewRawSource(pr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, src.Start(ctx, p))

	// The arrow sequence arrives in two reads.
	_, err := pw.Write([]byte("\x1b"))
	assert.NoError(t, err)
	_, err = pw.Write([]byte("[A"))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool { return p.Pending() == 1 }, 5*time.Second, time.Millisecond)
	p.Update()
	assert.True(t, p.State('W', KeyPressed))
	assert.False(t, p.Quit())

	// A lone ESC is taken as the Esc key once nothing follows it.
	_, err = pw.Write([]byte("\x1b"))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool { return p.Pending() == 1 }, 5*time.Second, time.Millisecond)
	p.Update()
	assert.True(t, p.Quit())
}

func TestTcellSource(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if !assert.NoError(t, sim.Init()) {
		return
	}
	defer sim.Fini()

	p := NewPoller(0, nil)
	src := NewTcellSource(sim, nil)
	assert.NoError(t, src.Start(context.Background(), p))

	sim.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	sim.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, '7', tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	assert.Eventually(t, func() bool { return p.Pending() == 3 }, 5*time.Second, time.Millisecond)

	p.Update()
	assert.True(t, p.State('D', KeyPressed))
	assert.True(t, p.State('W', KeyPressed))
	assert.True(t, p.Quit())

	assert.NoError(t, src.Close())
}

func TestTcellKeyEvent(t *testing.T) {
	type testCase struct {
		ev     *tcell.EventKey
		want   Event
		wantOK bool
	}

	testCases := []testCase{
		testCase{ev: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), want: Event{Key: 'x'}, wantOK: true},
		testCase{ev: tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)},
		testCase{ev: tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), want: Event{Key: 'A'}, wantOK: true},
		testCase{ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), want: Event{Quit: true}, wantOK: true},
		testCase{ev: tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)},
	}

	for i, tc := range testCases {
		got, ok := TcellKeyEvent(tc.ev)
		assert.Equal(t, tc.wantOK, ok, "testCase #%d", i)
		assert.Equal(t, tc.want, got, "testCase #%d", i)
	}
}
