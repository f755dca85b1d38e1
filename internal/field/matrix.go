package field

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	matrixTrailAlpha = 0.05
	matrixGlyphScale = 8.0
)

// Glyphs are the characters falling in matrix mode: digits and half-width
// katakana, which stay one cell wide in monospace fonts and terminals.
var Glyphs = []rune("0123456789ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜｦﾝ")

type matrixMode struct{}

func (matrixMode) Name() string { return "matrix" }

// Multiplier doubles the count for a denser rain.
func (matrixMode) Multiplier() int { return 2 }

func (matrixMode) spawn(env spawnEnv, n int) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:       env.rng.Float64() * env.geo.Width,
			Y:       env.rng.Float64() * env.geo.Height,
			Size:    env.between(1, 3),
			SpeedY:  env.between(1, 4) * env.speed,
			Opacity: env.between(0.3, 0.9),
		}
	}
	return ps
}

// advance moves glyphs straight down. A glyph found below the bottom edge
// restarts at the top on a fresh column instead of moving.
func (matrixMode) advance(ps []Particle, _ Input, t Tick, rng *rand.Rand) {
	for i := range ps {
		p := &ps[i]
		if p.Y > t.Height {
			p.Y = 0
			p.X = rng.Float64() * t.Width
			continue
		}
		p.Y += p.SpeedY * t.Frames
	}
}

func (matrixMode) render(s Surface, ps []Particle, base colorful.Color, rng *rand.Rand) {
	s.Fill(colorful.Color{}, matrixTrailAlpha)
	for i := range ps {
		g := Glyphs[rng.Intn(len(Glyphs))]
		s.Glyph(ps[i].X, ps[i].Y, g, ps[i].Size*matrixGlyphScale, base, ps[i].Opacity)
	}
}
