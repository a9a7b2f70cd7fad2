// Package scorelog keeps the history of finished games in an append-only
// file, one game per line.
package scorelog

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"

	"github.com/dimonomid/cellterm/vector"
)

type ScoreLog struct {
	params ScoreLogParams

	items *vector.Vector[Item]
}

type ScoreLogParams struct {
	// Filename is where to load the scores from and append them to. If it's
	// empty, the scores are only kept in RAM and not persisted anywhere.
	Filename string
}

type Item struct {
	Time  time.Time
	Score int
}

// New creates the score log and loads the existing scores from the file, if
// any. A missing file is not an error, and broken lines are skipped.
func New(params ScoreLogParams) (*ScoreLog, error) {
	l := &ScoreLog{
		params: params,
		items:  vector.New[Item](0),
	}

	if err := l.load(); err != nil {
		return nil, errors.Trace(err)
	}

	return l, nil
}

func (l *ScoreLog) load() error {
	if l.params.Filename == "" {
		return nil
	}

	f, err := os.Open(l.params.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Annotatef(err, "opening %s", l.params.Filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		item, ok := unmarshalItem(scanner.Text())
		if !ok {
			continue
		}

		l.items.Append(item)
	}

	return errors.Annotatef(scanner.Err(), "reading %s", l.params.Filename)
}

// Add adds a new score to the in-RAM log and, if Filename in params was not
// empty, then also to this file.
func (l *ScoreLog) Add(score int) error {
	item := Item{
		Time:  time.Now(),
		Score: score,
	}

	l.items.Append(item)

	if l.params.Filename != "" {
		f, err := os.OpenFile(l.params.Filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Trace(err)
		}

		defer f.Close()

		if _, err := f.Write(marshalItem(item)); err != nil {
			return errors.Annotatef(err, "writing %s", l.params.Filename)
		}
	}

	return nil
}

// Items returns all scores in the order they were added.
func (l *ScoreLog) Items() []Item {
	return l.items.Slice()
}

// Best returns the best score, or false if there are none.
func (l *ScoreLog) Best() (Item, bool) {
	var best Item
	found := false

	for _, item := range l.items.Slice() {
		if !found || item.Score > best.Score {
			best = item
			found = true
		}
	}

	return best, found
}

// Top returns up to n best scores, best first; equal scores keep the order
// they were added in. Negative n is treated as 0.
func (l *ScoreLog) Top(n int) []Item {
	if n < 0 {
		n = 0
	}

	sorted := vector.New[Item](l.items.Size())
	for _, item := range l.items.Slice() {
		sorted.Append(item)
	}

	sorted.Sort(func(a, b *Item) bool {
		return a.Score > b.Score
	}, vector.Desc)

	top := sorted.Slice()
	if n < len(top) {
		top = top[:n]
	}

	return top
}

// :1650712458000000000:4:0:1200
func marshalItem(item Item) []byte {
	score := strconv.Itoa(item.Score)

	b := bytes.Buffer{}
	b.WriteRune(':')
	b.WriteString(strconv.FormatInt(item.Time.UnixNano(), 10))
	b.WriteRune(':')
	b.WriteString(strconv.Itoa(len(score)))
	b.WriteString(":0:") // For now, no extra info
	b.WriteString(score)
	b.WriteRune('\n')

	return b.Bytes()
}

func unmarshalItem(line string) (Item, bool) {
	parts := strings.SplitN(line, ":", 5)
	if len(parts) != 5 || parts[0] != "" {
		return Item{}, false
	}

	nanos, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Item{}, false
	}

	size, err := strconv.Atoi(parts[2])
	if err != nil || size != len(parts[4]) {
		return Item{}, false
	}

	score, err := strconv.Atoi(parts[4])
	if err != nil {
		return Item{}, false
	}

	return Item{Time: time.Unix(0, nanos), Score: score}, true
}
