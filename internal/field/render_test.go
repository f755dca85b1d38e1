package field

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var purple, _ = colorful.Hex(DefaultColor)

func TestDefaultRender(t *testing.T) {
	ps := []Particle{
		{X: 0, Y: 0, Size: 1, Opacity: 0.5},
		{X: 50, Y: 0, Size: 1, Opacity: 0.5},
		{X: 500, Y: 500, Size: 1, Opacity: 0.5},
	}
	r := &recorder{}
	Render(Default, r, ps, purple, rand.New(rand.NewSource(1)))

	if r.calls[0].op != "clear" {
		t.Errorf("expected clear first, got %s", r.calls[0].op)
	}
	if got := r.count("circle"); got != 3 {
		t.Errorf("expected 3 dots, got %d", got)
	}
	if got := r.count("line"); got != 1 {
		t.Fatalf("expected 1 proximity line, got %d", got)
	}
	for _, c := range r.calls {
		if c.op == "line" && math.Abs(c.alpha-0.1) > 1e-9 {
			t.Errorf("expected line alpha 0.1 at half distance, got %f", c.alpha)
		}
	}
}

func TestLinkAlpha(t *testing.T) {
	tests := []struct {
		d, want float64
	}{
		{0, linkMaxAlpha},
		{50, linkMaxAlpha / 2},
		{99, linkMaxAlpha * 0.01},
		{100, 0},
		{150, 0},
	}
	for _, tt := range tests {
		if got := linkAlpha(tt.d); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("linkAlpha(%f) = %f, want %f", tt.d, got, tt.want)
		}
	}
}

func TestNetworkRender_LinesBeforeDots(t *testing.T) {
	f := newField(t, "network", 30, wide, 3)
	r := &recorder{}
	f.Draw(r)

	firstDot := slices.IndexFunc(r.calls, func(c drawCall) bool { return c.op == "circle" })
	lastLine := -1
	for i, c := range r.calls {
		if c.op == "line" {
			lastLine = i
		}
	}
	if firstDot < 0 || lastLine < 0 {
		t.Fatalf("expected both lines and dots, got %d calls", len(r.calls))
	}
	if lastLine > firstDot {
		t.Errorf("line drawn at %d after first dot at %d", lastLine, firstDot)
	}

	links := 0
	for _, p := range f.Particles() {
		links += len(p.Connections)
	}
	if got := r.count("line"); got != links {
		t.Errorf("expected %d connection lines, got %d", links, got)
	}
}

func TestFluidRender_Glow(t *testing.T) {
	f := newField(t, "fluid", 10, wide, 3)
	r := &recorder{}
	f.Draw(r)

	if r.calls[0].op != "clear" {
		t.Errorf("expected clear first, got %s", r.calls[0].op)
	}
	if r.calls[1].op != "composite" || r.calls[1].composite != CompositeLighter {
		t.Errorf("expected lighter composite before glows, got %+v", r.calls[1])
	}
	last := r.calls[len(r.calls)-1]
	if last.op != "composite" || last.composite != CompositeSourceOver {
		t.Errorf("expected composite restored last, got %+v", last)
	}

	glows := 0
	for _, c := range r.calls {
		if c.op != "glow" {
			continue
		}
		p := f.Particles()[glows]
		if c.r != p.Size*4 {
			t.Errorf("glow %d: radius %f, want %f", glows, c.r, p.Size*4)
		}
		if c.color != *p.Tint {
			t.Errorf("glow %d: color %s, want tint %s", glows, c.color.Hex(), p.Tint.Hex())
		}
		glows++
	}
	if glows != f.Len() {
		t.Errorf("expected %d glows, got %d", f.Len(), glows)
	}
}

func TestMatrixRender_TrailNotClear(t *testing.T) {
	f := newField(t, "matrix", 10, wide, 3)
	r := &recorder{}
	f.Draw(r)

	if r.count("clear") != 0 {
		t.Error("matrix mode must not clear the surface")
	}
	if r.calls[0].op != "fill" || r.calls[0].alpha != matrixTrailAlpha {
		t.Errorf("expected translucent overlay first, got %+v", r.calls[0])
	}
	for i, c := range r.calls[1:] {
		if c.op != "glyph" {
			t.Fatalf("call %d: expected glyph, got %s", i+1, c.op)
		}
		if !slices.Contains(Glyphs, c.glyph) {
			t.Errorf("glyph %q not in the glyph set", c.glyph)
		}
		p := f.Particles()[i]
		if c.r != p.Size*matrixGlyphScale {
			t.Errorf("glyph %d: size %f, want %f", i, c.r, p.Size*matrixGlyphScale)
		}
		if c.color != f.Base() {
			t.Errorf("glyph %d: expected base color", i)
		}
	}
}

func TestPalette(t *testing.T) {
	p := NewPalette(purple)
	_, _, l := p[0].Hsl()
	_, _, lighter := p[1].Hsl()
	_, _, darker := p[2].Hsl()

	if p[0] != purple {
		t.Errorf("first entry should be the base color")
	}
	if lighter <= l {
		t.Errorf("lighter entry %f not lighter than base %f", lighter, l)
	}
	if darker >= l {
		t.Errorf("darker entry %f not darker than base %f", darker, l)
	}
}

func TestDrawDotGrid(t *testing.T) {
	r := &recorder{}
	DrawDotGrid(r, Geometry{Width: 100, Height: 40}, purple)

	if r.calls[0].op != "clear" {
		t.Errorf("expected clear first")
	}
	if got := r.count("circle"); got != 10 {
		t.Errorf("expected 5x2 grid, got %d dots", got)
	}
	for _, c := range r.calls[1:] {
		if c.alpha >= 0.5 {
			t.Errorf("grid dot alpha %f is not faint", c.alpha)
		}
	}
}
