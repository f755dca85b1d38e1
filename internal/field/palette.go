package field

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// paletteShift is how far lighter/darker entries move in HSL lightness.
const paletteShift = 0.2

// Palette is the fluid tint set: base, base lightened, base darkened.
type Palette [3]colorful.Color

func NewPalette(base colorful.Color) Palette {
	h, s, l := base.Hsl()
	return Palette{
		base,
		colorful.Hsl(h, s, math.Min(1, l+paletteShift)),
		colorful.Hsl(h, s, math.Max(0, l-paletteShift)),
	}
}

// ParseColor parses a #rgb or #rrggbb hex color.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, &ParamError{Param: "color", Value: hex, Wrapped: fmt.Errorf("%w: %q", ErrInvalidColor, hex)}
	}
	return c, nil
}
