package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/particlefield/internal/field"
)

// surface draws into a render texture that persists between frames, so
// modes that never clear (matrix) keep their trails. Texture mode is
// entered lazily on the first draw call because the engine also draws
// outside the frame loop, on mount and on resize.
type surface struct {
	target rl.RenderTexture2D
	font   rl.Font
	w, h   int32
	active bool
	blend  bool
}

func (s *surface) begin() {
	if !s.active {
		rl.BeginTextureMode(s.target)
		s.active = true
	}
}

// end leaves texture mode; the app calls it before composing the window.
func (s *surface) end() {
	if s.blend {
		rl.EndBlendMode()
		s.blend = false
	}
	if s.active {
		rl.EndTextureMode()
		s.active = false
	}
}

func (s *surface) Clear() {
	s.begin()
	rl.ClearBackground(rl.NewColor(0, 0, 0, 0))
}

func (s *surface) Fill(c colorful.Color, alpha float64) {
	s.begin()
	rl.DrawRectangle(0, 0, s.w, s.h, toRGBA(c, alpha))
}

func (s *surface) Circle(x, y, r float64, c colorful.Color, alpha float64) {
	s.begin()
	rl.DrawCircleV(vec(x, y), float32(r), toRGBA(c, alpha))
}

func (s *surface) Line(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64) {
	s.begin()
	rl.DrawLineEx(vec(x0, y0), vec(x1, y1), float32(width), toRGBA(c, alpha))
}

func (s *surface) Glow(x, y, r float64, c colorful.Color, alpha float64) {
	s.begin()
	rl.DrawCircleGradient(int32(x), int32(y), float32(r), toRGBA(c, alpha), toRGBA(c, 0))
}

func (s *surface) Glyph(x, y float64, g rune, size float64, c colorful.Color, alpha float64) {
	s.begin()
	// raylib positions text by its top-left corner
	rl.DrawTextCodepoint(s.font, g, vec(x, y-size), float32(size), toRGBA(c, alpha))
}

func (s *surface) SetComposite(op field.Composite) {
	s.begin()
	switch {
	case op == field.CompositeLighter && !s.blend:
		rl.BeginBlendMode(rl.BlendAdditive)
		s.blend = true
	case op == field.CompositeSourceOver && s.blend:
		rl.EndBlendMode()
		s.blend = false
	}
}

func vec(x, y float64) rl.Vector2 { return rl.NewVector2(float32(x), float32(y)) }

func toRGBA(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	a := math.Round(math.Max(0, math.Min(1, alpha)) * 255)
	return rl.NewColor(r, g, b, uint8(a))
}
