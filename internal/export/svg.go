package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/particlefield/internal/field"
)

// minOpacity is where faded shapes are dropped from the document.
const minOpacity = 0.02

type shapeKind int

const (
	shapeCircle shapeKind = iota
	shapeLine
	shapeGlow
	shapeGlyph
)

type shape struct {
	kind    shapeKind
	x, y    float64
	x1, y1  float64
	r       float64
	glyph   rune
	color   string
	opacity float64
	lighter bool
}

// SVG is a vector surface. Shapes accumulate until Clear; Fill fades
// everything already drawn instead of painting a rectangle, so trails
// come out as decreasing opacity.
type SVG struct {
	Width, Height float64
	Background    string

	shapes []shape
	op     field.Composite
}

func NewSVG(width, height float64) *SVG {
	return &SVG{Width: width, Height: height, Background: "#0a0a0a"}
}

// Resize sets the document size and drops every shape.
func (s *SVG) Resize(width, height float64) {
	s.Width, s.Height = width, height
	s.shapes = s.shapes[:0]
}

func (s *SVG) Len() int { return len(s.shapes) }

func (s *SVG) add(sh shape) {
	if sh.opacity < minOpacity {
		return
	}
	sh.lighter = s.op == field.CompositeLighter
	s.shapes = append(s.shapes, sh)
}

func (s *SVG) Clear() { s.shapes = s.shapes[:0] }

func (s *SVG) Fill(_ colorful.Color, alpha float64) {
	kept := s.shapes[:0]
	for _, sh := range s.shapes {
		sh.opacity *= 1 - alpha
		if sh.opacity >= minOpacity {
			kept = append(kept, sh)
		}
	}
	s.shapes = kept
}

func (s *SVG) Circle(x, y, r float64, c colorful.Color, alpha float64) {
	s.add(shape{kind: shapeCircle, x: x, y: y, r: r, color: c.Clamped().Hex(), opacity: alpha})
}

func (s *SVG) Line(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64) {
	s.add(shape{kind: shapeLine, x: x0, y: y0, x1: x1, y1: y1, r: width, color: c.Clamped().Hex(), opacity: alpha})
}

func (s *SVG) Glow(x, y, r float64, c colorful.Color, alpha float64) {
	s.add(shape{kind: shapeGlow, x: x, y: y, r: r, color: c.Clamped().Hex(), opacity: alpha})
}

func (s *SVG) Glyph(x, y float64, g rune, size float64, c colorful.Color, alpha float64) {
	s.add(shape{kind: shapeGlyph, x: x, y: y, r: size, glyph: g, color: c.Clamped().Hex(), opacity: alpha})
}

func (s *SVG) SetComposite(op field.Composite) { s.op = op }

// String renders the document.
func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background))

	// one gradient per glow color
	grads := map[string]string{}
	var defs strings.Builder
	for _, sh := range s.shapes {
		if sh.kind != shapeGlow || grads[sh.color] != "" {
			continue
		}
		id := fmt.Sprintf("glow%d", len(grads))
		grads[sh.color] = id
		defs.WriteString(fmt.Sprintf(`<radialGradient id="%s"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s" stop-opacity="0"/></radialGradient>
`, id, sh.color, sh.color))
	}
	if defs.Len() > 0 {
		sb.WriteString("<defs>\n" + defs.String() + "</defs>\n")
	}

	for _, sh := range s.shapes {
		blend := ""
		if sh.lighter {
			blend = ` style="mix-blend-mode:plus-lighter"`
		}
		switch sh.kind {
		case shapeCircle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"%s/>
`, sh.x, sh.y, sh.r, sh.color, sh.opacity, blend))
		case shapeLine:
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f"%s/>
`, sh.x, sh.y, sh.x1, sh.y1, sh.color, sh.r, sh.opacity, blend))
		case shapeGlow:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="url(#%s)" opacity="%.3f"%s/>
`, sh.x, sh.y, sh.r, grads[sh.color], sh.opacity, blend))
		case shapeGlyph:
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s" fill-opacity="%.3f"%s>%s</text>
`, sh.x, sh.y, sh.r, sh.color, sh.opacity, blend, escapeXML(string(sh.glyph))))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) Save(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

func escapeXML(v string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(v)
}
