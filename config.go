package caribou

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings of an application window and its helpers.
// It is read from TOML:
//
//	[window]
//	title = "caribou"
//	width = 640
//	height = 400
//	clear_color = "#ffffff"
//
//	[log]
//	level = "debug"
//
//	[dispatch]
//	workers = 4
//	tick = "2ms"
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
	Dispatch DispatchConfig `toml:"dispatch"`
}

// WindowConfig configures the platform window.
type WindowConfig struct {
	Title         string `toml:"title"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	TPS           int    `toml:"tps"`
	ClearColor    string `toml:"clear_color"`
	ShowFPS       bool   `toml:"show_fps"`
	ScreenshotDir string `toml:"screenshot_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// DispatchConfig configures the background worker pool and scheduler.
type DispatchConfig struct {
	Workers int    `toml:"workers"`
	Tick    string `toml:"tick"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:         "caribou",
			Width:         640,
			Height:        400,
			TPS:           60,
			ClearColor:    "#ffffff",
			ScreenshotDir: "screenshots",
		},
		Log:      LogConfig{Level: "info"},
		Dispatch: DispatchConfig{Workers: 0, Tick: "2ms"},
	}
}

// LoadConfig reads TOML from r on top of DefaultConfig and validates the
// result. Unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("caribou: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads the TOML file at path. See LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("caribou: read config: %w", err)
	}
	return LoadConfig(bytes.NewReader(data))
}

// Validate checks value ranges and the formats of string-encoded fields.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("caribou: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		return fmt.Errorf("caribou: invalid tps %d", c.Window.TPS)
	}
	if _, err := c.Window.Background(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Dispatch.Workers < 0 {
		return fmt.Errorf("caribou: invalid worker count %d", c.Dispatch.Workers)
	}
	if _, err := c.Dispatch.TickInterval(); err != nil {
		return err
	}
	return nil
}

// Background parses ClearColor. Accepted forms are #rgb, #rrggbb and
// #rrggbbaa.
func (w WindowConfig) Background() (Color, error) {
	return ParseHexColor(w.ClearColor)
}

// ParseHexColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("caribou: invalid color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("caribou: invalid color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Level parses the log level name.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("caribou: invalid log level %q", c.Log.Level)
	}
}

// Logger builds a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// TickInterval parses Tick. An empty value yields the 2ms default.
func (d DispatchConfig) TickInterval() (time.Duration, error) {
	if d.Tick == "" {
		return 2 * time.Millisecond, nil
	}
	t, err := time.ParseDuration(d.Tick)
	if err != nil {
		return 0, fmt.Errorf("caribou: invalid dispatch tick: %w", err)
	}
	if t <= 0 {
		return 0, fmt.Errorf("caribou: invalid dispatch tick %v", t)
	}
	return t, nil
}
