package main

import (
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"

	"github.com/dimonomid/cellterm/markup"
)

// Config is the snake configuration, as read from the yaml file. Every field
// can also be overridden with --set name=value; see AllOptions.
type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	FPS        int    `yaml:"fps"`

	// Presenter is either "ansi" or "tcell".
	Presenter string `yaml:"presenter"`

	// Seed for the food placement; 0 means seeding from the current time.
	Seed uint32 `yaml:"seed"`

	Colors ConfigColors `yaml:"colors"`
	Keys   ConfigKeys   `yaml:"keys"`
}

type ConfigColors struct {
	Border string `yaml:"border"`
	Snake  string `yaml:"snake"`
	Food   string `yaml:"food"`
	Text   string `yaml:"text"`
}

type ConfigKeys struct {
	Up       string `yaml:"up"`
	Left     string `yaml:"left"`
	Down     string `yaml:"down"`
	Right    string `yaml:"right"`
	Grow     string `yaml:"grow"`
	Quit     string `yaml:"quit"`
	Snapshot string `yaml:"snapshot"`
}

const (
	PresenterANSI  = "ansi"
	PresenterTcell = "tcell"
)

var validPresenters = map[string]struct{}{
	PresenterANSI:  struct{}{},
	PresenterTcell: struct{}{},
}

func DefaultConfig() Config {
	return Config{
		Width:      40,
		Height:     20,
		Background: " ",
		FPS:        5,
		Presenter:  PresenterANSI,
		Colors: ConfigColors{
			Border: "red",
			Snake:  "red",
			Food:   "yellow",
			Text:   "none",
		},
		Keys: ConfigKeys{
			Up:       "w",
			Left:     "a",
			Down:     "s",
			Right:    "d",
			Grow:     "t",
			Quit:     "q",
			Snapshot: "c",
		},
	}
}

// LoadConfigFromFile loads the config from the yaml file at path; fields
// which are not in the file keep their default values.
func LoadConfigFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening config file: %s", path)
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotatef(err, "reading config file %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Annotatef(err, "unmarshaling yaml from %s", path)
	}

	if _, err := cfg.Settings(); err != nil {
		return nil, errors.Annotatef(err, "%s", path)
	}

	return &cfg, nil
}

// Settings is the validated form of Config, used by the game.
type Settings struct {
	Width, Height int
	Background    byte
	FPS           int
	Presenter     string
	Seed          uint32

	BorderColor markup.Color
	SnakeColor  markup.Color
	FoodColor   markup.Color
	TextColor   markup.Color

	KeyUp, KeyLeft, KeyDown, KeyRight byte
	KeyGrow, KeyQuit, KeySnapshot     byte
}

// Settings validates the config and converts it to Settings.
func (c *Config) Settings() (Settings, error) {
	s := Settings{
		Width:     c.Width,
		Height:    c.Height,
		FPS:       c.FPS,
		Presenter: c.Presenter,
		Seed:      c.Seed,
	}

	// The playfield needs room for the border, the snake and the score row.
	if c.Width < 8 {
		return Settings{}, errors.Errorf("width must be at least 8, got %d", c.Width)
	}
	if c.Height < 6 {
		return Settings{}, errors.Errorf("height must be at least 6, got %d", c.Height)
	}

	if len(c.Background) != 1 {
		return Settings{}, errors.Errorf("background must be exactly one character, got %q", c.Background)
	}
	s.Background = c.Background[0]

	if _, ok := validPresenters[c.Presenter]; !ok {
		valid := make([]string, 0, len(validPresenters))
		for p := range validPresenters {
			valid = append(valid, p)
		}
		sort.Strings(valid)

		return Settings{}, errors.Errorf("invalid presenter %q; valid options are: %s", c.Presenter, valid)
	}

	colors := []struct {
		name  string
		value string
		dst   *markup.Color
	}{
		{"colors.border", c.Colors.Border, &s.BorderColor},
		{"colors.snake", c.Colors.Snake, &s.SnakeColor},
		{"colors.food", c.Colors.Food, &s.FoodColor},
		{"colors.text", c.Colors.Text, &s.TextColor},
	}
	for _, cl := range colors {
		color, err := markup.ParseColor(cl.value)
		if err != nil {
			return Settings{}, errors.Annotatef(err, "%s", cl.name)
		}
		*cl.dst = color
	}

	keys := []struct {
		name  string
		value string
		dst   *byte
	}{
		{"keys.up", c.Keys.Up, &s.KeyUp},
		{"keys.left", c.Keys.Left, &s.KeyLeft},
		{"keys.down", c.Keys.Down, &s.KeyDown},
		{"keys.right", c.Keys.Right, &s.KeyRight},
		{"keys.grow", c.Keys.Grow, &s.KeyGrow},
		{"keys.quit", c.Keys.Quit, &s.KeyQuit},
		{"keys.snapshot", c.Keys.Snapshot, &s.KeySnapshot},
	}
	usedBy := map[byte]string{}
	for _, k := range keys {
		if len(k.value) != 1 || !isLetter(k.value[0]) {
			return Settings{}, errors.Errorf("%s must be a single letter, got %q", k.name, k.value)
		}

		key := strings.ToUpper(k.value)[0]
		if other, ok := usedBy[key]; ok {
			return Settings{}, errors.Errorf("%s and %s are both bound to %q", other, k.name, key)
		}
		usedBy[key] = k.name

		*k.dst = key
	}

	return s, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
