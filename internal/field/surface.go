package field

import colorful "github.com/lucasb-eyer/go-colorful"

// Composite selects how new paint blends with what is already on a surface.
type Composite int

const (
	CompositeSourceOver Composite = iota
	// CompositeLighter adds color channels, used for glow.
	CompositeLighter
)

// Surface is the 2D drawing context a field renders into. Coordinates are
// canvas pixels; alpha is in [0, 1].
type Surface interface {
	// Clear wipes the whole surface to transparent.
	Clear()
	// Fill paints a translucent layer over the whole surface.
	Fill(c colorful.Color, alpha float64)
	Circle(x, y, r float64, c colorful.Color, alpha float64)
	Line(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64)
	// Glow paints a radial gradient from alpha at the center to fully
	// transparent at radius r.
	Glow(x, y, r float64, c colorful.Color, alpha float64)
	// Glyph draws a single monospace character with its baseline origin at (x, y).
	Glyph(x, y float64, g rune, size float64, c colorful.Color, alpha float64)
	SetComposite(op Composite)
}

const (
	dotGridSpacing = 20.0
	dotGridRadius  = 1.0
	dotGridAlpha   = 0.1
)

// DrawDotGrid paints the static background used instead of the animation
// when the user prefers reduced motion.
func DrawDotGrid(s Surface, g Geometry, c colorful.Color) {
	s.Clear()
	for y := dotGridSpacing / 2; y < g.Height; y += dotGridSpacing {
		for x := dotGridSpacing / 2; x < g.Width; x += dotGridSpacing {
			s.Circle(x, y, dotGridRadius, c, dotGridAlpha)
		}
	}
}
