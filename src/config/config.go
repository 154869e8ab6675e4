// Package config builds the immutable run configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// TRAJVIZ_* environment variables (a .env file in the working directory is
// loaded first when present). Command-line flags are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Experiment constants.
const (
	DefaultArenaRadius    = 1.65 // meters
	DefaultPixelsPerMeter = 200
	DefaultSessionTag     = "vw1ezaxd"
	DefaultOutputDir      = "trajectory_plots"
	DefaultResultsRoot    = "results_prolific"
	DefaultDPI            = 300
	DefaultFigureInches   = 10
)

// EnvPrefix is the prefix of environment overrides, e.g. TRAJVIZ_ARENA_RADIUS.
const EnvPrefix = "TRAJVIZ_"

// Config is read once at startup and passed by value.
type Config struct {
	ResultsRoot    string        `yaml:"results_root" mapstructure:"results_root"`
	SessionTag     string        `yaml:"session_tag" mapstructure:"session_tag"`
	OutputDir      string        `yaml:"output_dir" mapstructure:"output_dir"`
	ArenaRadius    float64       `yaml:"arena_radius" mapstructure:"arena_radius"`
	PixelsPerMeter float64       `yaml:"pixels_per_meter" mapstructure:"pixels_per_meter"`
	DPI            float64       `yaml:"dpi" mapstructure:"dpi"`
	FigureInches   float64       `yaml:"figure_inches" mapstructure:"figure_inches"`
	LogLevel       string        `yaml:"log_level" mapstructure:"log_level"`
	TrialTimeout   time.Duration `yaml:"trial_timeout" mapstructure:"trial_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ResultsRoot:    DefaultResultsRoot,
		SessionTag:     DefaultSessionTag,
		OutputDir:      DefaultOutputDir,
		ArenaRadius:    DefaultArenaRadius,
		PixelsPerMeter: DefaultPixelsPerMeter,
		DPI:            DefaultDPI,
		FigureInches:   DefaultFigureInches,
		LogLevel:       "info",
	}
}

// Load layers the YAML file at path (optional, "" skips it) and the environment
// over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overlays TRAJVIZ_* entries from environ ("KEY=value" pairs).
// Values are weakly typed, so "1.65" and "30s" decode into their fields.
func (c *Config) ApplyEnv(environ []string) error {
	vals := map[string]interface{}{}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		vals[strings.ToLower(strings.TrimPrefix(k, EnvPrefix))] = v
	}
	if len(vals) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(vals); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

// Validate rejects values that would make rendering impossible.
func (c Config) Validate() error {
	switch {
	case c.ArenaRadius <= 0:
		return fmt.Errorf("arena_radius must be > 0 (got %v)", c.ArenaRadius)
	case c.DPI <= 0:
		return fmt.Errorf("dpi must be > 0 (got %v)", c.DPI)
	case c.FigureInches < 0:
		return fmt.Errorf("figure_inches must not be negative (got %v)", c.FigureInches)
	case c.FigureInches == 0 && c.PixelsPerMeter <= 0:
		return fmt.Errorf("pixels_per_meter must be > 0 when figure_inches is 0 (got %v)", c.PixelsPerMeter)
	case strings.TrimSpace(c.SessionTag) == "":
		return errors.New("session_tag must not be empty")
	case c.TrialTimeout < 0:
		return errors.New("trial_timeout must not be negative")
	}
	return nil
}

// PlotLimitFactor scales the arena radius to the half-width of the axes.
const PlotLimitFactor = 1.1

// FigureSize is the edge length of the square chart in inches. A zero
// FigureInches derives it from the axis span at PixelsPerMeter.
func (c Config) FigureSize() float64 {
	if c.FigureInches > 0 {
		return c.FigureInches
	}
	return 2 * c.ArenaRadius * PlotLimitFactor * c.PixelsPerMeter / c.DPI
}

// FigurePixels is the edge length of the square chart in pixels.
func (c Config) FigurePixels() int {
	return int(math.Round(c.FigureSize() * c.DPI))
}
