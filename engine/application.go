package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/math"
	"github.com/spaghettifunk/walkthedog/engine/platform"
)

type ApplicationConfig struct {
	// The application name used in log lines.
	Name string `toml:"name"`
	// Identifier of the canvas element drawn into.
	CanvasID string `toml:"canvas_id"`
	// Canvas size. Only the headless host creates a canvas of this size;
	// in a browser the page decides.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// One of debug, info, warn or error.
	LogLevel string `toml:"log_level"`
	// Directory resources are resolved against by the headless host.
	AssetsDir string `toml:"assets_dir"`
	// Animation frames per second delivered by the headless host.
	FrameRate int `toml:"frame_rate"`

	Sprites SpriteConfig `toml:"sprites"`
}

// SpriteConfig names the resources of the demo and where they are drawn.
type SpriteConfig struct {
	Idle        string  `toml:"idle"`
	Sheet       string  `toml:"sheet"`
	SheetImage  string  `toml:"sheet_image"`
	Animation   string  `toml:"animation"`
	Frames      int     `toml:"frames"`
	TicksPerCel int     `toml:"ticks_per_cel"`
	X           float64 `toml:"x"`
	Y           float64 `toml:"y"`
	ClearWidth  float64 `toml:"clear_width"`
	ClearHeight float64 `toml:"clear_height"`
}

// FrameName returns the sheet frame name of the n-th animation cel,
// counting from zero.
func (s SpriteConfig) FrameName(n int) string {
	return fmt.Sprintf("%s (%d).png", s.Animation, n+1)
}

func (s SpriteConfig) Dest() math.Point {
	return math.Point{X: s.X, Y: s.Y}
}

func (s SpriteConfig) ClearArea() math.Rect {
	return math.NewRect(0, 0, s.ClearWidth, s.ClearHeight)
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:      "Walk the Dog",
		CanvasID:  platform.DefaultCanvasID,
		Width:     600,
		Height:    600,
		LogLevel:  "info",
		AssetsDir: "static",
		FrameRate: 60,
		Sprites: SpriteConfig{
			Idle:        "Idle (1).png",
			Sheet:       "rhb.json",
			SheetImage:  "rhb.png",
			Animation:   "Run",
			Frames:      8,
			TicksPerCel: 3,
			X:           300,
			Y:           300,
			ClearWidth:  600,
			ClearHeight: 600,
		},
	}
}

// LoadApplicationConfig reads the TOML file at path over the defaults.
// An empty path returns the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	if path == "" {
		return DefaultApplicationConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseApplicationConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseApplicationConfig(b []byte) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	if err := toml.Unmarshal(b, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("invalid config at line %d column %d: %w", row, col, err)
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	var errs []error
	if c.CanvasID == "" {
		errs = append(errs, errors.New("canvas_id must not be empty"))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height))
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	s := c.Sprites
	if s.Idle == "" || s.Sheet == "" || s.SheetImage == "" || s.Animation == "" {
		errs = append(errs, errors.New("sprites: idle, sheet, sheet_image and animation are required"))
	}
	if s.Frames <= 0 || s.TicksPerCel <= 0 {
		errs = append(errs, fmt.Errorf("sprites: frames and ticks_per_cel must be positive, got %d and %d", s.Frames, s.TicksPerCel))
	}
	if s.ClearWidth < 0 || s.ClearHeight < 0 {
		errs = append(errs, errors.New("sprites: negative clear extent"))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level. Validate has already rejected
// unknown names.
func (c *ApplicationConfig) Level() core.LogLevel {
	l, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return l
}
