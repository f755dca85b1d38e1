package field

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	defaultPullRadius = 150.0
	defaultPullCoef   = 0.02
	linkDistance      = 100.0
	linkMaxAlpha      = 0.2
	linkWidth         = 0.5
)

type defaultMode struct{}

func (defaultMode) Name() string    { return "default" }
func (defaultMode) Multiplier() int { return 1 }

func (defaultMode) spawn(env spawnEnv, n int) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:       env.rng.Float64() * env.geo.Width,
			Y:       env.rng.Float64() * env.geo.Height,
			Size:    env.between(0.5, 2.0),
			SpeedX:  env.centered(env.speed),
			SpeedY:  env.centered(env.speed),
			Opacity: env.between(0.3, 0.8),
		}
	}
	return ps
}

func (defaultMode) advance(ps []Particle, in Input, t Tick, _ *rand.Rand) {
	for i := range ps {
		p := &ps[i]
		p.X += p.SpeedX * t.Frames
		p.Y += p.SpeedY * t.Frames
		attract(p, in, defaultPullRadius, defaultPullCoef, t.Frames)
		wrapParticle(p, t.Geometry)
	}
}

func (defaultMode) render(s Surface, ps []Particle, base colorful.Color, _ *rand.Rand) {
	s.Clear()
	for i := range ps {
		s.Circle(ps[i].X, ps[i].Y, ps[i].Size, base, ps[i].Opacity)
	}
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d < linkDistance {
				s.Line(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y, linkWidth, base, linkAlpha(d))
			}
		}
	}
}

// linkAlpha fades a proximity line linearly to zero at linkDistance.
func linkAlpha(d float64) float64 {
	if d >= linkDistance {
		return 0
	}
	return linkMaxAlpha * (1 - d/linkDistance)
}
