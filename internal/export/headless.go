package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/particlefield/internal/engine"
	"github.com/san-kum/particlefield/internal/field"
)

// Target is a surface the engine may resize.
type Target interface {
	field.Surface
	Resize(width, height float64)
}

// File is a Target that can be written to disk.
type File interface {
	Target
	Save(path string) error
}

// New creates an empty file target of the given kind, "svg" or "png".
func New(kind string, width, height float64) (File, error) {
	switch kind {
	case "svg":
		return NewSVG(width, height), nil
	case "png":
		return NewPNG(width, height)
	}
	return nil, fmt.Errorf("unsupported output format %q (use svg or png)", kind)
}

// KindOf returns the target kind implied by a file name.
func KindOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// headlessCanvas puts a Target behind the engine's canvas contract.
type headlessCanvas struct{ t Target }

func (c headlessCanvas) Context() (field.Surface, bool) { return c.t, c.t != nil }
func (c headlessCanvas) Resize(w, h float64)            { c.t.Resize(w, h) }
func (c headlessCanvas) Offset() (float64, float64)     { return 0, 0 }

// Options describe an offscreen run.
type Options struct {
	Width, Height float64
	Frames        int
	FPS           int
	ReducedMotion bool
	// Pointer, when set, is a pointer position held for the whole run.
	Pointer *[2]float64
}

type Result struct {
	Frames    int
	Particles int
	Reduced   bool
}

// Session is an engine mounted on an offscreen window with its own clock.
type Session struct {
	Window *engine.BaseWindow
	Engine *engine.Engine

	now  time.Duration
	step time.Duration
}

func NewSession(t Target, p field.Params, o Options, opts ...engine.Option) *Session {
	fps := o.FPS
	if fps <= 0 {
		fps = field.ReferenceFPS
	}
	win := engine.NewBaseWindow(o.Width, o.Height, o.ReducedMotion)
	s := &Session{
		Window: win,
		Engine: engine.Mount(win, headlessCanvas{t}, p, opts...),
		step:   time.Second / time.Duration(fps),
	}
	if o.Pointer != nil {
		win.PointerMove(o.Pointer[0], o.Pointer[1])
	}
	return s
}

// Run flushes n display refreshes, advancing the clock one frame each.
func (s *Session) Run(n int) {
	for i := 0; i < n; i++ {
		s.Window.Flush(s.now)
		s.now += s.step
	}
}

func (s *Session) Result() Result {
	r := Result{Frames: s.Engine.Frames(), Reduced: s.Engine.ReducedMotion()}
	if f := s.Engine.Field(); f != nil {
		r.Particles = f.Len()
	}
	return r
}

func (s *Session) Close() { s.Engine.Unmount() }

// Render runs the requested number of frames offscreen and unmounts. The
// target keeps the last frame.
func Render(t Target, p field.Params, o Options, opts ...engine.Option) Result {
	s := NewSession(t, p, o, opts...)
	defer s.Close()
	s.Run(o.Frames)
	return s.Result()
}
