package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// OptionMeta describes a config field which can be set with --set.
type OptionMeta struct {
	// If AliasOf is non-empty, all the other fields are ignored.
	AliasOf string

	Get  func(c *Config) string
	Set  func(c *Config, value string) error
	Help string
}

func intOption(field func(c *Config) *int, help string) *OptionMeta {
	return &OptionMeta{
		Get: func(c *Config) string {
			return fmt.Sprint(*field(c))
		},
		Set: func(c *Config, value string) error {
			v, err := strconv.Atoi(value)
			if err != nil {
				return errors.Trace(err)
			}

			*field(c) = v
			return nil
		},
		Help: help,
	}
}

func stringOption(field func(c *Config) *string, help string) *OptionMeta {
	return &OptionMeta{
		Get: func(c *Config) string {
			return *field(c)
		},
		Set: func(c *Config, value string) error {
			*field(c) = value
			return nil
		},
		Help: help,
	}
}

var AllOptions = map[string]*OptionMeta{
	"width":      intOption(func(c *Config) *int { return &c.Width }, "Screen width, including the border"),
	"height":     intOption(func(c *Config) *int { return &c.Height }, "Screen height, including the border and the score row"),
	"fps":        intOption(func(c *Config) *int { return &c.FPS }, "Frames per second; 0 or less means as fast as possible"),
	"background": stringOption(func(c *Config) *string { return &c.Background }, "Background character"),
	"bg": {
		AliasOf: "background",
	},
	"presenter": stringOption(func(c *Config) *string { return &c.Presenter }, "How to draw the screen: ansi or tcell"),
	"seed": { // {{{
		Get: func(c *Config) string {
			return fmt.Sprint(c.Seed)
		},
		Set: func(c *Config, value string) error {
			seed, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return errors.Trace(err)
			}

			c.Seed = uint32(seed)
			return nil
		},
		Help: "Random seed for the food placement; 0 means seeding from the current time",
	}, // }}}

	"colors.border": stringOption(func(c *Config) *string { return &c.Colors.Border }, "Border color"),
	"colors.snake":  stringOption(func(c *Config) *string { return &c.Colors.Snake }, "Snake color"),
	"colors.food":   stringOption(func(c *Config) *string { return &c.Colors.Food }, "Food color"),
	"colors.text":   stringOption(func(c *Config) *string { return &c.Colors.Text }, "Score text color"),

	"keys.up":       stringOption(func(c *Config) *string { return &c.Keys.Up }, "Key to turn up"),
	"keys.left":     stringOption(func(c *Config) *string { return &c.Keys.Left }, "Key to turn left"),
	"keys.down":     stringOption(func(c *Config) *string { return &c.Keys.Down }, "Key to turn down"),
	"keys.right":    stringOption(func(c *Config) *string { return &c.Keys.Right }, "Key to turn right"),
	"keys.grow":     stringOption(func(c *Config) *string { return &c.Keys.Grow }, "Key to grow the snake without eating"),
	"keys.quit":     stringOption(func(c *Config) *string { return &c.Keys.Quit }, "Key to quit once the game is over"),
	"keys.snapshot": stringOption(func(c *Config) *string { return &c.Keys.Snapshot }, "Key to copy the screen to the clipboard"),
}

func OptionMetaByName(name string) *OptionMeta {
	meta, ok := AllOptions[name]
	if !ok {
		return nil
	}

	if alias := meta.AliasOf; alias != "" {
		var ok bool
		meta, ok = AllOptions[alias]
		if !ok {
			// This one would mean a programmer error, so we panic here.
			panic(fmt.Sprintf("option %s is defined as an alias of non-existing option %s", name, alias))
		}
	}

	if meta.AliasOf != "" {
		panic(fmt.Sprintf("option %s is defined as an alias of another alias %s", name, meta.AliasOf))
	}

	return meta
}

// ApplySetting applies one "name=value" override to the config.
func ApplySetting(c *Config, setting string) error {
	name, value, ok := strings.Cut(setting, "=")
	if !ok {
		return errors.Errorf("invalid setting %q, should be name=value", setting)
	}

	name = strings.TrimSpace(name)
	meta := OptionMetaByName(name)
	if meta == nil {
		return errors.Errorf("unknown option %q; valid options are: %s", name, strings.Join(OptionNames(), ", "))
	}

	if err := meta.Set(c, value); err != nil {
		return errors.Annotatef(err, "setting %s", name)
	}

	return nil
}

// OptionNames returns the sorted names of all options, aliases excluded.
func OptionNames() []string {
	names := make([]string, 0, len(AllOptions))
	for name, meta := range AllOptions {
		if meta.AliasOf != "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// OptionsHelp returns a help line for every option with its current value.
func OptionsHelp(c *Config) string {
	var sb strings.Builder
	for _, name := range OptionNames() {
		meta := AllOptions[name]
		sb.WriteString(fmt.Sprintf("  %-14s %s (current: %q)\n", name, meta.Help, meta.Get(c)))
	}

	return sb.String()
}
