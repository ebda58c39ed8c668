package app

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/scada-player/internal/render"
	"github.com/roman-kulish/scada-player/internal/scene"
	"github.com/roman-kulish/scada-player/internal/ui"
)

const (
	DefaultOutputDir = "out"
	DefaultLogLevel  = "info"

	// StdinInput selects standard input as the CSV source.
	StdinInput = "-"
)

// Config is the configuration of a single render run.
type Config struct {
	Input      string     // CSV path, "" or "-" for stdin
	Start      *time.Time // Inclusive lower bound, nil when open
	End        *time.Time // Exclusive upper bound, nil when open
	OutputDir  string
	ConfigFile string
	DBPath     string // Read records from this SQLite store instead of CSV
	SessionID  int64  // Store session, 0 selects the latest one
	Verbose    bool

	Render *RenderConfig
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Render:    DefaultRenderConfig(),
	}
}

// Validate checks the options that do not depend on the input.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if c.SessionID < 0 {
		return fmt.Errorf("invalid session id: %d", c.SessionID)
	}
	if c.SessionID > 0 && c.DBPath == "" {
		return errors.New("session id requires a database")
	}
	if c.DBPath != "" && c.Input != "" {
		return errors.New("input file and database are mutually exclusive")
	}
	return nil
}

// ParseTime parses a flexible human-readable datetime. Values without a zone
// are taken as UTC.
func ParseTime(value string) (*time.Time, error) {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid datetime '%s': %w", value, err)
	}
	return &t, nil
}

// ColorsConfig overrides the theme colours. Empty values keep the defaults.
type ColorsConfig struct {
	Ticks   string `yaml:"ticks"`
	Labels  string `yaml:"labels"`
	Turbine string `yaml:"turbine"`
	Wind    string `yaml:"wind"`
	Text    string `yaml:"text"`
}

// RenderConfig is the optional YAML file controlling how frames look.
type RenderConfig struct {
	LogLevel   string       `yaml:"logLevel"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	PixelRatio float64      `yaml:"pixelRatio"`
	Background string       `yaml:"background"`
	Colors     ColorsConfig `yaml:"colors"`
	Gauges     []string     `yaml:"gauges"`
	Metadata   *ui.Metadata `yaml:"metadata"`
	Playback   bool         `yaml:"playback"` // Show the start, end and position of the run
}

func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		LogLevel:   DefaultLogLevel,
		Width:      render.DefaultWidth,
		Height:     render.DefaultHeight,
		PixelRatio: render.DefaultPixelRatio,
	}
}

// LoadRenderConfig reads a YAML file on top of the defaults.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultRenderConfig()
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}
	if _, err = c.Theme(); err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}
	return c, nil
}

// Theme applies the configured colours to the default theme.
func (c *RenderConfig) Theme() (ui.Theme, error) {
	theme := ui.DefaultTheme()

	overrides := []struct {
		name  string
		value string
		dst   *color.Color
	}{
		{"background", c.Background, &theme.Background},
		{"ticks", c.Colors.Ticks, &theme.Ticks},
		{"labels", c.Colors.Labels, &theme.Labels},
		{"turbine", c.Colors.Turbine, &theme.Turbine},
		{"wind", c.Colors.Wind, &theme.Wind},
		{"text", c.Colors.Text, &theme.Text},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		v, err := scene.ParseColor(o.value)
		if err != nil {
			return ui.Theme{}, fmt.Errorf("colour '%s': %w", o.name, err)
		}
		*o.dst = v
	}

	return theme, nil
}
