package field

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	fluidDrift      = 0.5
	fluidTimeScale  = 0.001 // per millisecond
	fluidSpaceScale = 0.01  // per pixel
	fluidGlowScale  = 4.0
)

type fluidMode struct{}

func (fluidMode) Name() string    { return "fluid" }
func (fluidMode) Multiplier() int { return 1 }

func (fluidMode) spawn(env spawnEnv, n int) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		tint := env.palette[env.rng.Intn(len(env.palette))]
		ps[i] = Particle{
			X:       env.rng.Float64() * env.geo.Width,
			Y:       env.rng.Float64() * env.geo.Height,
			Size:    env.between(2, 6),
			SpeedX:  env.centered(2 * env.speed),
			SpeedY:  env.centered(2 * env.speed),
			Opacity: env.between(0.2, 0.6),
			Tint:    &tint,
		}
	}
	return ps
}

func (fluidMode) advance(ps []Particle, _ Input, t Tick, _ *rand.Rand) {
	phase := float64(t.Elapsed.Milliseconds()) * fluidTimeScale
	for i := range ps {
		p := &ps[i]
		x, y := p.X, p.Y
		p.X += (p.SpeedX + fluidTrig.sin(phase+y*fluidSpaceScale)*fluidDrift) * t.Frames
		p.Y += (p.SpeedY + fluidTrig.cos(phase+x*fluidSpaceScale)*fluidDrift) * t.Frames
		wrapParticle(p, t.Geometry)
	}
}

func (fluidMode) render(s Surface, ps []Particle, base colorful.Color, _ *rand.Rand) {
	s.Clear()
	s.SetComposite(CompositeLighter)
	defer s.SetComposite(CompositeSourceOver)
	for i := range ps {
		c := base
		if ps[i].Tint != nil {
			c = *ps[i].Tint
		}
		s.Glow(ps[i].X, ps[i].Y, ps[i].Size*fluidGlowScale, c, ps[i].Opacity)
	}
}
