package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlefield/internal/field"
)

const (
	DefaultFPS    = 60
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFrames = 120

	// ReducedMotionEnv is consulted when reduced_motion is "auto".
	ReducedMotionEnv = "PREFERS_REDUCED_MOTION"
)

// Reduced-motion settings.
const (
	MotionAuto = "auto"
	MotionOn   = "on"
	MotionOff  = "off"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Color       string  `yaml:"color"`
	Density     int     `yaml:"density"`
	Mode        string  `yaml:"mode"`
	Interactive bool    `yaml:"interactive"`
	Speed       float64 `yaml:"speed"`
	// ClassName is passed through to the host for layering; the engine
	// never reads it.
	ClassName string `yaml:"class_name,omitempty"`

	FPS           int    `yaml:"fps"`
	Seed          int64  `yaml:"seed,omitempty"`
	ReducedMotion string `yaml:"reduced_motion"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Frames        int    `yaml:"frames"`
}

func DefaultConfig() *Config {
	p := field.DefaultParams()
	return &Config{
		Color:         p.Color,
		Density:       p.Density,
		Mode:          p.Mode,
		Interactive:   p.Interactive,
		Speed:         p.Speed,
		FPS:           DefaultFPS,
		ReducedMotion: MotionAuto,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Frames:        DefaultFrames,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base: keys missing from the file keep the
// base values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params is the structural part handed to the engine.
func (c *Config) Params() field.Params {
	return field.Params{
		Color:       c.Color,
		Density:     c.Density,
		Mode:        c.Mode,
		Interactive: c.Interactive,
		Speed:       c.Speed,
	}
}

// Validate reports every invalid field. The engine itself tolerates bad
// values; the CLI refuses them.
func (c *Config) Validate() error {
	var errs []error
	if _, err := field.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := field.ParseColor(c.Color); err != nil {
		errs = append(errs, err)
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height))
	}
	switch c.ReducedMotion {
	case MotionAuto, MotionOn, MotionOff:
	default:
		errs = append(errs, fmt.Errorf("%w: reduced_motion must be auto, on or off, got %q", ErrInvalidConfig, c.ReducedMotion))
	}
	return errors.Join(errs...)
}

// PrefersReducedMotion resolves the reduced-motion setting. In auto mode
// the environment variable decides.
func (c *Config) PrefersReducedMotion(getenv func(string) string) bool {
	switch c.ReducedMotion {
	case MotionOn:
		return true
	case MotionOff:
		return false
	}
	switch strings.ToLower(strings.TrimSpace(getenv(ReducedMotionEnv))) {
	case "1", "true", "yes", "reduce":
		return true
	}
	return false
}
