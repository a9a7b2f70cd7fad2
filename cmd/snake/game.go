package main

import (
	"strconv"

	"github.com/juju/errors"

	"github.com/dimonomid/cellterm/clipboard"
	"github.com/dimonomid/cellterm/input"
	"github.com/dimonomid/cellterm/log"
	"github.com/dimonomid/cellterm/loop"
	"github.com/dimonomid/cellterm/markup"
	"github.com/dimonomid/cellterm/mstring"
	"github.com/dimonomid/cellterm/mtrand"
	"github.com/dimonomid/cellterm/screen"
	"github.com/dimonomid/cellterm/vector"
)

type Dir int

const (
	North Dir = iota
	East
	South
	West
)

func (d Dir) opposite() Dir {
	return (d + 2) % 4
}

type partKind int

const (
	partBody partKind = iota
	partTail
	partHead
)

type segment struct {
	kind partKind
	dir  Dir
	x, y int
}

func (s *segment) move() {
	switch s.dir {
	case North:
		s.y--
	case East:
		s.x++
	case South:
		s.y++
	case West:
		s.x--
	}
}

type coord struct {
	x, y int
}

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

const (
	glyphSolid      = '#'
	pointsPerGrowth = 100
)

// Game is the snake game state; its Frame method is the loop frame function.
//
// The playfield is framed by a border on rows 0 and height-2 and columns 0
// and width-1; the last row shows the score.
type Game struct {
	settings Settings

	snake   *vector.Vector[segment]
	nextDir Dir
	score   int
	state   GameState
	food    coord

	rnd *mtrand.Source

	gameOverText mstring.String
	pressQText   mstring.String

	// snapshot is called with the screen contents when the snapshot key is
	// pressed.
	snapshot func(text string)

	logger *log.Logger
}

func NewGame(settings Settings, rnd *mtrand.Source, logger *log.Logger) *Game {
	g := &Game{
		settings:     settings,
		rnd:          rnd,
		gameOverText: mstring.Make("Game Over!"),
		pressQText:   mstring.Make("Press " + string(settings.KeyQuit) + " to exit!"),
		snapshot: func(text string) {
			clipboard.WriteText([]byte(text))
		},
		logger: logger.WithNamespaceAppended("game"),
	}

	g.reset()

	return g
}

func (g *Game) reset() {
	w, h := g.settings.Width, g.settings.Height

	g.snake = vector.New[segment](10)
	g.snake.Append(segment{kind: partHead, dir: East, x: w / 2, y: h / 2})
	g.snake.Append(segment{kind: partBody, dir: East, x: w/2 - 1, y: h / 2})
	g.snake.Append(segment{kind: partTail, dir: East, x: w/2 - 2, y: h / 2})

	g.nextDir = East
	g.score = 0
	g.state = StatePlaying
	g.spawnFood()
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) head() *segment {
	head, _ := g.snake.Get(0)
	return head
}

// Frame advances the game by one step and draws it.
func (g *Game) Frame(scr *screen.Screen, in *input.Poller) error {
	if in.Quit() {
		return errors.Annotatef(loop.ErrQuit, "quit key")
	}

	g.drawBorder(scr)

	scoreText := mstring.Make("Your Score: ")
	scoreText.Append(strconv.Itoa(g.score))

	if g.state == StatePlaying {
		g.checkCollisions()
	}

	if g.state == StatePlaying {
		g.updateDirection(in)
		g.updateSnake()
	}

	switch g.state {
	case StatePlaying:
		w, h := g.settings.Width, g.settings.Height

		scr.SetPixel(g.food.x, g.food.y, glyphSolid, g.settings.FoodColor, g.settings.FoodColor)
		for _, s := range g.snake.Slice() {
			scr.SetPixel(s.x, s.y, glyphSolid, g.settings.SnakeColor, markup.None)
		}
		drawCentered(scr, &scoreText, w, h-1, g.settings.TextColor)

	case StateGameOver:
		w, h := g.settings.Width, g.settings.Height
		drawCentered(scr, &g.gameOverText, w, h/2, markup.Red)
		drawCentered(scr, &scoreText, w, h/2+1, markup.Red)
		drawCentered(scr, &g.pressQText, w, h/2+2, markup.Red)

		if in.State(g.settings.KeyQuit, input.KeyPressed) {
			return errors.Annotatef(loop.ErrQuit, "game over, score %d", g.score)
		}
	}

	if in.State(g.settings.KeySnapshot, input.KeyPressed) {
		g.logger.Infof("Copying snapshot to clipboard")
		g.snapshot(scr.Snapshot())
	}

	return nil
}

func drawCentered(scr *screen.Screen, text *mstring.String, width, y int, color markup.Color) {
	start := width/2 - text.Len()/2
	for i, c := range text.Bytes() {
		scr.SetPixel(start+i, y, c, color, markup.None)
	}
}

func (g *Game) drawBorder(scr *screen.Screen) {
	w, h := g.settings.Width, g.settings.Height
	color := g.settings.BorderColor

	for x := 0; x < w; x++ {
		scr.SetPixel(x, 0, glyphSolid, color, color)
		scr.SetPixel(x, h-2, glyphSolid, color, color)
	}
	for y := 1; y < h-1; y++ {
		scr.SetPixel(0, y, glyphSolid, color, color)
		scr.SetPixel(w-1, y, glyphSolid, color, color)
	}
}

func (g *Game) updateDirection(in *input.Poller) {
	if in.State(g.settings.KeyGrow, input.KeyPressed) {
		g.grow()
	}

	turns := []struct {
		key byte
		dir Dir
	}{
		{g.settings.KeyUp, North},
		{g.settings.KeyLeft, West},
		{g.settings.KeyDown, South},
		{g.settings.KeyRight, East},
	}

	for _, t := range turns {
		if in.State(t.key, input.KeyPressed) && g.nextDir != t.dir.opposite() {
			g.nextDir = t.dir
			return
		}
	}
}

// updateSnake moves every segment one step: the head goes towards nextDir,
// and every other segment takes the direction its predecessor had.
func (g *Game) updateSnake() {
	segs := g.snake.Slice()
	for i := len(segs) - 1; i >= 0; i-- {
		if i == 0 {
			segs[i].dir = g.nextDir
		} else {
			segs[i].dir = segs[i-1].dir
		}

		segs[i].move()
	}
}

// grow appends a new tail behind the old one and adds to the score.
func (g *Game) grow() {
	g.score += pointsPerGrowth

	oldTail, _ := g.snake.Last()
	newTail := segment{kind: partTail, dir: oldTail.dir, x: oldTail.x, y: oldTail.y}
	oldTail.kind = partBody

	switch oldTail.dir {
	case North:
		newTail.y++
	case East:
		newTail.x--
	case South:
		newTail.y--
	case West:
		newTail.x++
	}

	g.snake.Append(newTail)
}

func (g *Game) checkCollisions() {
	w, h := g.settings.Width, g.settings.Height
	head := *g.head()

	if head.x <= 0 || head.x >= w-1 || head.y <= 0 || head.y >= h-2 {
		g.gameOver("hit the border")
		return
	}

	for _, s := range g.snake.Slice()[1:] {
		if s.x == head.x && s.y == head.y {
			g.gameOver("bit itself")
			return
		}
	}

	if head.x == g.food.x && head.y == g.food.y {
		g.grow()
		g.spawnFood()
	}
}

func (g *Game) gameOver(reason string) {
	g.logger.Infof("Game over: %s, score %d", reason, g.score)
	g.state = StateGameOver
}

func (g *Game) occupied(x, y int) bool {
	for _, s := range g.snake.Slice() {
		if s.x == x && s.y == y {
			return true
		}
	}

	return false
}

// spawnFood puts the food on a random free cell inside the border. If there
// are no free cells left, the game is over.
func (g *Game) spawnFood() {
	w, h := g.settings.Width, g.settings.Height

	free := vector.New[coord](30).SetGrowthPolicy(vector.LogGrowth())
	defer free.Destroy()

	for x := 1; x < w-1; x++ {
		for y := 1; y < h-2; y++ {
			if !g.occupied(x, y) {
				free.Append(coord{x: x, y: y})
			}
		}
	}

	if free.Size() == 0 {
		g.gameOver("no room for food")
		return
	}

	food, _ := free.Get(g.rnd.Intn(free.Size()))
	g.food = *food
	g.logger.Verbose1f("Food at %d,%d", g.food.x, g.food.y)
}
