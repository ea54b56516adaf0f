// Package config holds the immutable settings passed to the render loop.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"odootoor/internal/anim"
)

// Sheet names used by the game.
const (
	SheetPunch = "punch"
	SheetRun   = "run"
)

// Config is the whole program configuration. Values are copied into the
// game at startup and replaced wholesale on reload.
type Config struct {
	Window     Window           `yaml:"window"`
	TPS        int              `yaml:"tps"`
	Text       Text             `yaml:"text"`
	Run        Run              `yaml:"run"`
	Sheets     map[string]Sheet `yaml:"sheets"`
	Music      Music            `yaml:"music"`
	DebugBoxes bool             `yaml:"debug_boxes"`
}

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Scale     int    `yaml:"scale"`
	Resizable bool   `yaml:"resizable"`
}

// Text controls the punched message.
type Text struct {
	Message     string `yaml:"message"`
	FontSize    int    `yaml:"font_size"`
	MinFontSize int    `yaml:"min_font_size"`
	MaxFontSize int    `yaml:"max_font_size"`
	FontStep    int    `yaml:"font_step"`
	Loop        bool   `yaml:"loop"`
}

// Run controls the running figure.
type Run struct {
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	Step      float64 `yaml:"step"`       // speed change per second of key hold
	BaseSpeed float64 `yaml:"base_speed"` // animation speed at run speed 1
	Move      float64 `yaml:"move"`       // pixels per tick at run speed 1
}

// Sheet describes one sprite strip.
type Sheet struct {
	Image      string  `yaml:"image"`
	CellWidth  int     `yaml:"cell_width"`
	CellHeight int     `yaml:"cell_height"`
	Frames     int     `yaml:"frames"`
	Speed      float64 `yaml:"speed"`
	Mirrored   bool    `yaml:"mirrored"`
}

type Music struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// AnimConfig converts s into animator geometry.
func (s Sheet) AnimConfig() anim.Config {
	return anim.Config{
		CellWidth:  s.CellWidth,
		CellHeight: s.CellHeight,
		FrameCount: s.Frames,
		Speed:      s.Speed,
		Mirrored:   s.Mirrored,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{Width: 800, Height: 600, Title: "Odootoor", Scale: 1, Resizable: true},
		TPS:    60,
		Text: Text{
			Message:     "Odootoor",
			FontSize:    20,
			MinFontSize: 5,
			MaxFontSize: 60,
			FontStep:    5,
			Loop:        true,
		},
		Run: Run{MinSpeed: 1, MaxSpeed: 3, Step: 1.2, BaseSpeed: 4, Move: 3},
		Sheets: map[string]Sheet{
			SheetPunch: {Image: "Punch-Sheet.png", CellWidth: 64, CellHeight: 64, Frames: 10, Speed: 6},
			SheetRun:   {Image: "Run-Sheet.png", CellWidth: 64, CellHeight: 64, Frames: 9, Speed: 2},
		},
		Music: Music{Enabled: false, Volume: 0.5},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML data over the defaults and validates the result.
// name is used in error messages only.
func Parse(data []byte, name string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

// Validate checks every field the game relies on.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window scale %d must be positive", c.Window.Scale))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}

	t := c.Text
	if t.Message == "" {
		errs = append(errs, errors.New("text message is empty"))
	}
	if t.MinFontSize <= 0 || t.MinFontSize > t.MaxFontSize {
		errs = append(errs, fmt.Errorf("font size bounds [%d, %d] are invalid", t.MinFontSize, t.MaxFontSize))
	} else if t.FontSize < t.MinFontSize || t.FontSize > t.MaxFontSize {
		errs = append(errs, fmt.Errorf("font size %d outside [%d, %d]", t.FontSize, t.MinFontSize, t.MaxFontSize))
	}

	r := c.Run
	if r.MinSpeed <= 0 || r.MinSpeed > r.MaxSpeed {
		errs = append(errs, fmt.Errorf("run speed bounds [%v, %v] are invalid", r.MinSpeed, r.MaxSpeed))
	}
	if r.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("run base speed %v must be positive", r.BaseSpeed))
	}

	for _, name := range []string{SheetPunch, SheetRun} {
		s, ok := c.Sheets[name]
		if !ok {
			errs = append(errs, fmt.Errorf("sheet %q is missing", name))
			continue
		}
		if s.Image == "" {
			errs = append(errs, fmt.Errorf("sheet %q has no image", name))
		}
		if err := s.AnimConfig().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sheet %q: %w", name, err))
		}
	}

	if c.Music.Volume < 0 || c.Music.Volume > 1 {
		errs = append(errs, fmt.Errorf("music volume %v outside [0, 1]", c.Music.Volume))
	}

	return errors.Join(errs...)
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Sheets = make(map[string]Sheet, len(c.Sheets))
	for k, v := range c.Sheets {
		out.Sheets[k] = v
	}
	return out
}
