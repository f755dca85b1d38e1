package field

import (
	"math/rand"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	networkPullRadius = 200.0
	networkPullCoef   = 0.01
	networkJitter     = 0.2
	networkLineAlpha  = 0.15

	fanOutNarrow = 2
	fanOutWide   = 3
	// connectionAttempts bounds the random draws per particle. A particle
	// may end up with fewer connections than its fan-out.
	connectionAttempts = 10
)

type networkMode struct{}

func (networkMode) Name() string    { return "network" }
func (networkMode) Multiplier() int { return 1 }

func (networkMode) spawn(env spawnEnv, n int) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:       env.rng.Float64() * env.geo.Width,
			Y:       env.rng.Float64() * env.geo.Height,
			Size:    env.between(1, 3),
			SpeedX:  env.centered(0.5 * env.speed),
			SpeedY:  env.centered(0.5 * env.speed),
			Opacity: env.between(0.3, 0.8),
		}
	}

	fanOut := fanOutWide
	if env.geo.Narrow() {
		fanOut = fanOutNarrow
	}
	for i := range ps {
		ps[i].Connections = connect(i, n, fanOut, env.rng)
	}
	return ps
}

// connect samples up to fanOut distinct peers of i from [0, n).
func connect(i, n, fanOut int, rng *rand.Rand) []int {
	if n < 2 {
		return nil
	}
	conns := make([]int, 0, fanOut)
	for attempt := 0; attempt < connectionAttempts && len(conns) < fanOut; attempt++ {
		j := rng.Intn(n)
		if j == i || slices.Contains(conns, j) {
			continue
		}
		conns = append(conns, j)
	}
	return conns
}

func (networkMode) advance(ps []Particle, in Input, t Tick, rng *rand.Rand) {
	for i := range ps {
		p := &ps[i]
		p.X += (p.SpeedX + (rng.Float64()-0.5)*networkJitter) * t.Frames
		p.Y += (p.SpeedY + (rng.Float64()-0.5)*networkJitter) * t.Frames
		attract(p, in, networkPullRadius, networkPullCoef, t.Frames)
		wrapParticle(p, t.Geometry)
	}
}

func (networkMode) render(s Surface, ps []Particle, base colorful.Color, _ *rand.Rand) {
	s.Clear()
	// lines first so dots sit on top
	for i := range ps {
		for _, j := range ps[i].Connections {
			if j < 0 || j >= len(ps) {
				continue
			}
			s.Line(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y, linkWidth, base, networkLineAlpha)
		}
	}
	for i := range ps {
		s.Circle(ps[i].X, ps[i].Y, ps[i].Size, base, ps[i].Opacity)
	}
}
