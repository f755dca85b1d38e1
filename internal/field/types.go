package field

import (
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// MobileBreakpoint is the viewport width below which density is halved.
	MobileBreakpoint = 768.0

	// ReferenceFPS is the frame rate the per-frame constants are tuned for.
	ReferenceFPS = 60.0

	// ReferenceFrame is one frame at ReferenceFPS.
	ReferenceFrame = time.Second / ReferenceFPS

	DefaultColor   = "#8C52FF"
	DefaultDensity = 30
	DefaultSpeed   = 1.0
)

// Particle is a single simulated point.
type Particle struct {
	X, Y           float64
	Size           float64
	SpeedX, SpeedY float64
	Opacity        float64

	// Tint overrides the base color. Only fluid particles carry one.
	Tint *colorful.Color

	// Connections holds indices into the same collection. Only network
	// particles carry them; they never change after spawning.
	Connections []int
}

// Params is the structural configuration of a field. Any change to it
// requires a full re-spawn.
type Params struct {
	Color       string
	Density     int
	Mode        string
	Interactive bool
	Speed       float64
}

func DefaultParams() Params {
	return Params{
		Color:       DefaultColor,
		Density:     DefaultDensity,
		Mode:        Default.Name(),
		Interactive: true,
		Speed:       DefaultSpeed,
	}
}

// Geometry is the canvas size in pixels.
type Geometry struct {
	Width, Height float64
}

// Narrow reports whether the viewport is below the mobile breakpoint.
func (g Geometry) Narrow() bool { return g.Width < MobileBreakpoint }

// Input is the interaction state read by the update step.
type Input struct {
	PointerX, PointerY float64
	HasPointer         bool
}

// Tick describes the frame being advanced.
type Tick struct {
	Geometry
	// Elapsed is the time since the field was spawned.
	Elapsed time.Duration
	// Frames is the step length in reference frames; 1 reproduces the
	// per-frame rules exactly.
	Frames float64
}

// FramesFor converts a wall-clock step into reference frames. One
// ReferenceFrame is exactly 1.
func FramesFor(dt time.Duration) float64 {
	return float64(dt) / float64(ReferenceFrame)
}
