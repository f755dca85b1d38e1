package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/particlefield/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	// litThreshold is the lowest intensity that still shows as a dot; it
	// sits just under the dot grid alpha so the static grid stays visible.
	litThreshold = 0.08
	// PxPerDot is how many canvas pixels one braille dot covers.
	PxPerDot = 6.0
)

type glyphCell struct {
	r     rune
	color colorful.Color
	alpha float64
}

// Canvas is a braille surface: every terminal cell holds 2x4 dots, each
// dot an intensity in [0, 1] with the color that last lit it. Glyphs sit
// on a separate per-cell layer and win over dots.
type Canvas struct {
	Width, Height int // cells

	lum    []float64
	tint   []colorful.Color
	glyphs []glyphCell
	op     field.Composite
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.SetSize(w, h)
	return c
}

// SetSize reallocates the buffers for w x h cells, wiping the content.
func (c *Canvas) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	c.Width, c.Height = w, h
	c.lum = make([]float64, w*2*h*4)
	c.tint = make([]colorful.Color, len(c.lum))
	c.glyphs = make([]glyphCell, w*h)
}

func (c *Canvas) dotsW() int { return c.Width * 2 }
func (c *Canvas) dotsH() int { return c.Height * 4 }

// Intensity returns the dot at (x, y) in dot coordinates.
func (c *Canvas) Intensity(x, y int) float64 {
	if x < 0 || y < 0 || x >= c.dotsW() || y >= c.dotsH() {
		return 0
	}
	return c.lum[y*c.dotsW()+x]
}

func (c *Canvas) plot(x, y int, col colorful.Color, a float64) {
	if x < 0 || y < 0 || x >= c.dotsW() || y >= c.dotsH() || a <= 0 {
		return
	}
	i := y*c.dotsW() + x
	switch c.op {
	case field.CompositeLighter:
		c.lum[i] = math.Min(1, c.lum[i]+a)
	default:
		c.lum[i] += a * (1 - c.lum[i])
	}
	c.tint[i] = col
}

func toDot(v float64) int { return int(math.Floor(v / PxPerDot)) }

func (c *Canvas) Clear() {
	clear(c.lum)
	clear(c.glyphs)
}

// Fill darkens everything by alpha, the way a translucent black layer
// fades what is underneath.
func (c *Canvas) Fill(_ colorful.Color, alpha float64) {
	keep := 1 - alpha
	for i := range c.lum {
		c.lum[i] *= keep
	}
	for i := range c.glyphs {
		c.glyphs[i].alpha *= keep
	}
}

func (c *Canvas) Circle(x, y, r float64, col colorful.Color, alpha float64) {
	cx, cy := toDot(x), toDot(y)
	rd := int(r / PxPerDot)
	for dy := -rd; dy <= rd; dy++ {
		for dx := -rd; dx <= rd; dx++ {
			if dx*dx+dy*dy <= rd*rd {
				c.plot(cx+dx, cy+dy, col, alpha)
			}
		}
	}
}

// Line draws using Bresenham's algorithm; width below one dot is ignored.
func (c *Canvas) Line(x0, y0, x1, y1, _ float64, col colorful.Color, alpha float64) {
	ax, ay, bx, by := toDot(x0), toDot(y0), toDot(x1), toDot(y1)
	dx := absInt(bx - ax)
	dy := absInt(by - ay)
	sx := -1
	if ax < bx {
		sx = 1
	}
	sy := -1
	if ay < by {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(ax, ay, col, alpha)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

func (c *Canvas) Glow(x, y, r float64, col colorful.Color, alpha float64) {
	cx, cy := toDot(x), toDot(y)
	rd := r / PxPerDot
	n := int(rd)
	if n == 0 {
		c.plot(cx, cy, col, alpha)
		return
	}
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d < rd {
				c.plot(cx+dx, cy+dy, col, alpha*(1-d/rd))
			}
		}
	}
}

// Glyph places g in the cell containing (x, y). The size is fixed by the
// terminal font.
func (c *Canvas) Glyph(x, y float64, g rune, _ float64, col colorful.Color, alpha float64) {
	dx, dy := toDot(x), toDot(y)
	if dx < 0 || dy < 0 || dx >= c.dotsW() || dy >= c.dotsH() {
		return
	}
	cx, cy := dx/2, dy/4
	c.glyphs[cy*c.Width+cx] = glyphCell{r: g, color: col, alpha: alpha}
}

func (c *Canvas) SetComposite(op field.Composite) { c.op = op }

// cell returns the character for one terminal cell and the color of its
// brightest dot, dimmed by that dot's intensity.
func (c *Canvas) cell(col, row int) (rune, colorful.Color, bool) {
	if g := c.glyphs[row*c.Width+col]; g.alpha >= litThreshold && g.r != 0 {
		return g.r, dim(g.color, g.alpha), true
	}
	ch := rune(brailleBase)
	var best float64
	var tint colorful.Color
	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 2; sx++ {
			i := (row*4+sy)*c.dotsW() + col*2 + sx
			if c.lum[i] < litThreshold {
				continue
			}
			ch |= pixelMap[sy][sx]
			if c.lum[i] > best {
				best, tint = c.lum[i], c.tint[i]
			}
		}
	}
	return ch, dim(tint, best), best > 0
}

// dim keeps faint dots readable on a dark terminal.
func dim(col colorful.Color, a float64) colorful.Color {
	return colorful.Color{}.BlendRgb(col, 0.35+0.65*math.Min(a, 1)).Clamped()
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			ch, _, _ := c.cell(col, row)
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render is String with each lit run colored through lipgloss.
func (c *Canvas) Render() string {
	var b, run strings.Builder
	var runColor string
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runColor == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
		}
		run.Reset()
	}

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			ch, tint, lit := c.cell(col, row)
			hex := ""
			if lit {
				hex = tint.Hex()
			}
			if hex != runColor {
				flush()
				runColor = hex
			}
			run.WriteRune(ch)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
