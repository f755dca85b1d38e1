package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/particlefield/internal/field"
)

func TestApplyKey(t *testing.T) {
	base := field.DefaultParams()

	tests := []struct {
		name    string
		key     int32
		check   func(field.Params) bool
		changed bool
	}{
		{"mode two", rl.KeyTwo, func(p field.Params) bool { return p.Mode == "network" }, true},
		{"mode four", rl.KeyFour, func(p field.Params) bool { return p.Mode == "matrix" }, true},
		{"same mode", rl.KeyOne, func(p field.Params) bool { return p == base }, false},
		{"interactive", rl.KeyI, func(p field.Params) bool { return !p.Interactive }, true},
		{"denser", rl.KeyEqual, func(p field.Params) bool { return p.Density == 35 }, true},
		{"sparser", rl.KeyMinus, func(p field.Params) bool { return p.Density == 25 }, true},
		{"faster", rl.KeyRightBracket, func(p field.Params) bool { return p.Speed == 1.25 }, true},
		{"slower", rl.KeyLeftBracket, func(p field.Params) bool { return p.Speed == 0.8 }, true},
		{"unbound", rl.KeyZ, func(p field.Params) bool { return p == base }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := applyKey(base, tt.key)
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if !tt.check(got) {
				t.Errorf("unexpected params %+v", got)
			}
		})
	}
}

func TestApplyKey_DensityFloor(t *testing.T) {
	p := field.DefaultParams()
	p.Density = 3
	got, _ := applyKey(p, rl.KeyMinus)
	if got.Density != 0 {
		t.Errorf("expected density clamped to 0, got %d", got.Density)
	}
}

func TestToRGBA(t *testing.T) {
	c := colorful.Color{R: 1, G: 0.5, B: 0}

	got := toRGBA(c, 0.5)
	if got.R != 255 || got.G != 128 || got.B != 0 || got.A != 128 {
		t.Errorf("unexpected color %+v", got)
	}
	if a := toRGBA(c, 2).A; a != 255 {
		t.Errorf("alpha not clamped high: %d", a)
	}
	if a := toRGBA(c, -1).A; a != 0 {
		t.Errorf("alpha not clamped low: %d", a)
	}
	if got := toRGBA(colorful.Color{R: 1.4, G: -0.2, B: 0.5}, 1); got.R != 255 || got.G != 0 {
		t.Errorf("channels not clamped: %+v", got)
	}
}

func TestContext_NeedsTexture(t *testing.T) {
	a := &App{}
	if _, ok := a.Context(); ok {
		t.Error("context reported without a surface")
	}

	a.surface = &surface{}
	if _, ok := a.Context(); ok {
		t.Error("context reported before a texture exists")
	}

	a.surface.target = rl.RenderTexture2D{ID: 1}
	if s, ok := a.Context(); !ok || s == nil {
		t.Error("expected the texture surface once a texture exists")
	}
}
