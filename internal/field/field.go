package field

import (
	"errors"
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Field is a spawned particle collection for one mode and geometry.
type Field struct {
	params  Params
	mode    Mode
	base    colorful.Color
	palette Palette
	geo     Geometry
	rng     *rand.Rand

	particles []Particle
	spare     []Particle
	elapsed   time.Duration
}

// New spawns a field. It fails on an unknown mode or an unparsable color;
// see [Params.Sanitize] for a lenient path.
func New(p Params, g Geometry, rng *rand.Rand) (*Field, error) {
	mode, err := ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}
	base, err := ParseColor(p.Color)
	if err != nil {
		return nil, err
	}
	f := &Field{
		params:  p,
		mode:    mode,
		base:    base,
		palette: NewPalette(base),
		rng:     rng,
	}
	f.Reset(g)
	return f, nil
}

// Sanitize replaces an unknown mode or invalid color with the defaults.
// The returned error joins every replacement made.
func (p Params) Sanitize() (Params, error) {
	var errs []error
	if _, err := ParseMode(p.Mode); err != nil {
		errs = append(errs, err)
		p.Mode = Default.Name()
	}
	if _, err := ParseColor(p.Color); err != nil {
		errs = append(errs, err)
		p.Color = DefaultColor
	}
	return p, errors.Join(errs...)
}

// Reset discards every particle and spawns a fresh collection for g.
func (f *Field) Reset(g Geometry) {
	f.geo = g
	f.elapsed = 0
	env := spawnEnv{geo: g, speed: f.params.Speed, palette: f.palette, rng: f.rng}
	f.particles = f.mode.spawn(env, Count(f.mode, f.params.Density, g))
	f.spare = make([]Particle, 0, len(f.particles))
}

// Step advances the field by dt. Pointer input is ignored unless the field
// is interactive.
func (f *Field) Step(in Input, dt time.Duration) {
	if !f.params.Interactive {
		in = Input{}
	}
	f.elapsed += dt
	t := Tick{Geometry: f.geo, Elapsed: f.elapsed, Frames: FramesFor(dt)}

	f.spare = append(f.spare[:0], f.particles...)
	f.mode.advance(f.spare, in, t, f.rng)
	f.particles, f.spare = f.spare, f.particles
}

func (f *Field) Draw(s Surface) {
	f.mode.render(s, f.particles, f.base, f.rng)
}

// Advance returns the particles one step later and leaves ps untouched.
func Advance(m Mode, ps []Particle, in Input, t Tick, rng *rand.Rand) []Particle {
	next := make([]Particle, len(ps))
	copy(next, ps)
	m.advance(next, in, t, rng)
	return next
}

// Render draws ps as mode m would.
func Render(m Mode, s Surface, ps []Particle, base colorful.Color, rng *rand.Rand) {
	m.render(s, ps, base, rng)
}

// Spawn creates the particles mode m would start with for p on g.
func Spawn(m Mode, p Params, base colorful.Color, g Geometry, rng *rand.Rand) []Particle {
	env := spawnEnv{geo: g, speed: p.Speed, palette: NewPalette(base), rng: rng}
	return m.spawn(env, Count(m, p.Density, g))
}

func (f *Field) Mode() Mode             { return f.mode }
func (f *Field) Params() Params         { return f.params }
func (f *Field) Geometry() Geometry     { return f.geo }
func (f *Field) Base() colorful.Color   { return f.base }
func (f *Field) Elapsed() time.Duration { return f.elapsed }
func (f *Field) Len() int               { return len(f.particles) }

// Particles returns the live collection; callers must not modify it.
func (f *Field) Particles() []Particle { return f.particles }
