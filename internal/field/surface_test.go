package field

import colorful "github.com/lucasb-eyer/go-colorful"

type drawCall struct {
	op        string
	x, y, r   float64
	alpha     float64
	color     colorful.Color
	glyph     rune
	composite Composite
}

// recorder is a Surface that remembers every call in order.
type recorder struct {
	calls []drawCall
}

func (r *recorder) Clear() { r.calls = append(r.calls, drawCall{op: "clear"}) }

func (r *recorder) Fill(c colorful.Color, alpha float64) {
	r.calls = append(r.calls, drawCall{op: "fill", color: c, alpha: alpha})
}

func (r *recorder) Circle(x, y, rad float64, c colorful.Color, alpha float64) {
	r.calls = append(r.calls, drawCall{op: "circle", x: x, y: y, r: rad, color: c, alpha: alpha})
}

func (r *recorder) Line(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64) {
	r.calls = append(r.calls, drawCall{op: "line", x: x0, y: y0, color: c, alpha: alpha})
}

func (r *recorder) Glow(x, y, rad float64, c colorful.Color, alpha float64) {
	r.calls = append(r.calls, drawCall{op: "glow", x: x, y: y, r: rad, color: c, alpha: alpha})
}

func (r *recorder) Glyph(x, y float64, g rune, size float64, c colorful.Color, alpha float64) {
	r.calls = append(r.calls, drawCall{op: "glyph", x: x, y: y, r: size, glyph: g, color: c, alpha: alpha})
}

func (r *recorder) SetComposite(op Composite) {
	r.calls = append(r.calls, drawCall{op: "composite", composite: op})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}
