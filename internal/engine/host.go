package engine

import "github.com/san-kum/particlefield/internal/field"

// Window is the environment an engine is mounted into.
type Window interface {
	Scheduler
	// Size is the viewport size in pixels.
	Size() (width, height float64)
	AddListener(kind EventKind, fn Listener) ListenerID
	RemoveListener(id ListenerID)
	PrefersReducedMotion() bool
}

// Canvas is the drawing target layered behind the host's content.
type Canvas interface {
	// Context returns the 2D surface, or false when none can be acquired.
	Context() (field.Surface, bool)
	// Resize sets the pixel dimensions of the canvas.
	Resize(width, height float64)
	// Offset is the canvas origin in window coordinates.
	Offset() (x, y float64)
}

// BaseWindow implements Window for hosts that pump their own events and
// frames: they call Resize, PointerMove and TouchMove as input arrives
// and Flush once per display refresh.
type BaseWindow struct {
	FrameQueue
	Listeners

	Width, Height float64
	ReducedMotion bool
}

func NewBaseWindow(width, height float64, reducedMotion bool) *BaseWindow {
	return &BaseWindow{Width: width, Height: height, ReducedMotion: reducedMotion}
}

func (w *BaseWindow) Size() (float64, float64) { return w.Width, w.Height }

func (w *BaseWindow) PrefersReducedMotion() bool { return w.ReducedMotion }

func (w *BaseWindow) AddListener(kind EventKind, fn Listener) ListenerID {
	return w.Listeners.Add(kind, fn)
}

func (w *BaseWindow) RemoveListener(id ListenerID) { w.Listeners.Remove(id) }

// Resize updates the viewport and notifies resize listeners. Unchanged
// sizes are not dispatched.
func (w *BaseWindow) Resize(width, height float64) {
	if width == w.Width && height == w.Height {
		return
	}
	w.Width, w.Height = width, height
	w.Dispatch(Event{Kind: EventResize})
}

func (w *BaseWindow) PointerMove(x, y float64) {
	w.Dispatch(Event{Kind: EventPointerMove, X: x, Y: y})
}

func (w *BaseWindow) TouchMove(x, y float64) {
	w.Dispatch(Event{Kind: EventTouchMove, X: x, Y: y})
}
