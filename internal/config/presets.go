package config

import "sort"

// Presets are ready-made backgrounds keyed by name.
var Presets = map[string]*Config{
	"hero": {
		Color: "#8C52FF", Density: 30, Mode: "default", Interactive: true, Speed: 1.0,
	},
	"constellation": {
		Color: "#5CE1E6", Density: 60, Mode: "network", Interactive: true, Speed: 0.6,
	},
	"aurora": {
		Color: "#8C52FF", Density: 40, Mode: "fluid", Interactive: false, Speed: 0.5,
	},
	"rain": {
		Color: "#00FF41", Density: 50, Mode: "matrix", Interactive: false, Speed: 1.2,
	},
	"calm": {
		Color: "#A0A0A0", Density: 15, Mode: "default", Interactive: false, Speed: 0.3,
	},
}

// GetPreset returns a copy of the named preset on top of the defaults, or
// nil when it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Color = p.Color
	cfg.Density = p.Density
	cfg.Mode = p.Mode
	cfg.Interactive = p.Interactive
	cfg.Speed = p.Speed
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
