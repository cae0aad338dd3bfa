package main

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/sketch/gallery"
)

// config holds the settings a TOML file may supply. Flags given on the
// command line override it.
type config struct {
	Width    int            `toml:"width"`
	Height   int            `toml:"height"`
	Output   string         `toml:"output"`
	Demo     string         `toml:"demo"`
	Font     string         `toml:"font"`
	FontSize float64        `toml:"font_size"`
	LogLevel string         `toml:"log_level"`
	Inputs   gallery.Inputs `toml:"inputs"`
}

func defaultConfig() config {
	return config{
		Width:  800,
		Height: 600,
		Output: "sketch.png",
		Demo:   "sierpinski",
	}
}

// loadConfig reads path over the defaults. Unknown keys are an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// level returns the configured log level and whether one was set.
func (c config) level() (slog.Level, bool, error) {
	if c.LogLevel == "" {
		return 0, false, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, false, fmt.Errorf("config: log_level: %w", err)
	}
	return l, true, nil
}
