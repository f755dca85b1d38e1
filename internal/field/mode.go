package field

import (
	"fmt"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Mode is one of the four particle behaviors. The set is closed: each
// variant owns how its particles are spawned, advanced and drawn, so
// per-mode invariants live with the variant.
type Mode interface {
	Name() string
	// Multiplier scales the adapted density.
	Multiplier() int

	spawn(env spawnEnv, n int) []Particle
	advance(ps []Particle, in Input, t Tick, rng *rand.Rand)
	render(s Surface, ps []Particle, base colorful.Color, rng *rand.Rand)
}

var (
	Default Mode = defaultMode{}
	Network Mode = networkMode{}
	Fluid   Mode = fluidMode{}
	Matrix  Mode = matrixMode{}
)

// Modes lists every mode in presentation order.
func Modes() []Mode {
	return []Mode{Default, Network, Fluid, Matrix}
}

func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, &ParamError{Param: "mode", Value: name, Wrapped: fmt.Errorf("%w: %q", ErrUnknownMode, name)}
}

// Count is the particle count spawned for density on geometry g.
func Count(m Mode, density int, g Geometry) int {
	if density <= 0 {
		return 0
	}
	n := density
	if g.Narrow() {
		n /= 2
	}
	return n * m.Multiplier()
}

type spawnEnv struct {
	geo     Geometry
	speed   float64
	palette Palette
	rng     *rand.Rand
}

// between draws uniformly from [lo, hi).
func (e spawnEnv) between(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// centered draws uniformly from [-0.5, 0.5) times scale.
func (e spawnEnv) centered(scale float64) float64 {
	return (e.rng.Float64() - 0.5) * scale
}

// attract pulls p toward the pointer when it lies within radius.
func attract(p *Particle, in Input, radius, coef, frames float64) {
	if !in.HasPointer {
		return
	}
	dx, dy := in.PointerX-p.X, in.PointerY-p.Y
	if dx*dx+dy*dy >= radius*radius {
		return
	}
	k := math.Min(coef*frames, 1)
	p.X += dx * k
	p.Y += dy * k
}

// wrap folds v into [0, size).
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}

func wrapParticle(p *Particle, g Geometry) {
	p.X = wrap(p.X, g.Width)
	p.Y = wrap(p.Y, g.Height)
}
