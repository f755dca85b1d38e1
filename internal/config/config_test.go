package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/particlefield/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "default" {
		t.Errorf("expected mode default, got %s", cfg.Mode)
	}
	if cfg.Color != "#8C52FF" {
		t.Errorf("expected color #8C52FF, got %s", cfg.Color)
	}
	if cfg.Density != 30 {
		t.Errorf("expected density 30, got %d", cfg.Density)
	}
	if !cfg.Interactive {
		t.Error("expected interactive by default")
	}
	if cfg.Speed != 1.0 {
		t.Errorf("expected speed 1.0, got %f", cfg.Speed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	if err := os.WriteFile(path, []byte("mode: matrix\ndensity: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Mode != "matrix" || cfg.Density != 20 {
		t.Errorf("expected matrix/20, got %s/%d", cfg.Mode, cfg.Density)
	}
	if !cfg.Interactive || cfg.Color != "#8C52FF" || cfg.FPS != DefaultFPS {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadOver_Preset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	os.WriteFile(path, []byte("speed: 2.5\n"), 0644)

	cfg, err := LoadOver(path, GetPreset("rain"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Mode != "matrix" || cfg.Speed != 2.5 {
		t.Errorf("expected preset mode with file speed, got %s/%.1f", cfg.Mode, cfg.Speed)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("density: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	cfg := DefaultConfig()
	cfg.Mode = "network"
	cfg.ClassName = "opacity-40"
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown mode", func(c *Config) { c.Mode = "vortex" }, field.ErrUnknownMode},
		{"bad color", func(c *Config) { c.Color = "purple" }, field.ErrInvalidColor},
		{"zero fps", func(c *Config) { c.FPS = 0 }, ErrInvalidConfig},
		{"negative size", func(c *Config) { c.Width = -1 }, ErrInvalidConfig},
		{"bad motion", func(c *Config) { c.ReducedMotion = "sometimes" }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_NegativeDensityAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Density = -3
	if err := cfg.Validate(); err != nil {
		t.Errorf("negative density should spawn nothing, not fail: %v", err)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClassName = "fixed inset-0"
	cfg.Mode = "fluid"

	want := field.DefaultParams()
	want.Mode = "fluid"
	if got := cfg.Params(); got != want {
		t.Errorf("Params() = %+v, want %+v", got, want)
	}
}

func TestPrefersReducedMotion(t *testing.T) {
	env := func(v string) func(string) string {
		return func(key string) string {
			if key == ReducedMotionEnv {
				return v
			}
			return ""
		}
	}

	tests := []struct {
		setting string
		env     string
		want    bool
	}{
		{MotionOn, "", true},
		{MotionOff, "1", false},
		{MotionAuto, "", false},
		{MotionAuto, "1", true},
		{MotionAuto, " Reduce ", true},
		{MotionAuto, "no-preference", false},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.ReducedMotion = tt.setting
		if got := cfg.PrefersReducedMotion(env(tt.env)); got != tt.want {
			t.Errorf("%s with env %q: got %v, want %v", tt.setting, tt.env, got, tt.want)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rain")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Mode != "matrix" {
		t.Errorf("expected matrix, got %s", cfg.Mode)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("preset lost default fps: %d", cfg.FPS)
	}

	cfg.Density = 999
	if Presets["rain"].Density == 999 {
		t.Error("GetPreset returned shared state")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for i, name := range names {
		if i > 0 && names[i-1] > name {
			t.Errorf("presets not sorted: %v", names)
		}
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
