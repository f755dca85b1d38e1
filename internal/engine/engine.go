package engine

import (
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/san-kum/particlefield/internal/field"
)

const (
	// maxFrameStep caps dt after a stall so particles do not leap.
	maxFrameStep = 3 * field.ReferenceFrame
	refFrame     = field.ReferenceFrame
)

// InputState is the last pointer position in canvas coordinates.
type InputState struct {
	X, Y  float64
	Known bool
}

// FrameStats describes one completed animation frame.
type FrameStats struct {
	Frame     int
	Now       time.Duration
	Dt        time.Duration
	Work      time.Duration
	Particles int
}

type Observer interface {
	OnFrame(s FrameStats)
}

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSeed makes particle spawning and per-frame randomness repeatable.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithClock replaces the wall clock used to measure frame work.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.clock = now }
}

// Engine drives a particle field on a canvas inside a window.
type Engine struct {
	win       Window
	cv        Canvas
	params    field.Params
	log       *log.Logger
	rng       *rand.Rand
	clock     func() time.Time
	observers []Observer

	reduced bool
	mounted bool

	surface   field.Surface
	field     *field.Field
	input     InputState
	listeners []ListenerID

	gen     uint64
	frame   FrameID
	pending bool
	last    time.Duration
	hasLast bool
	frames  int
}

// Mount attaches an engine to win and cv and starts animating. The
// reduced-motion preference is read once here and kept for the engine's
// lifetime.
func Mount(win Window, cv Canvas, p field.Params, opts ...Option) *Engine {
	e := &Engine{
		win:    win,
		cv:     cv,
		params: p,
		log:    log.New(io.Discard, "", 0),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.reduced = win.PrefersReducedMotion()
	e.mounted = true
	e.setup()
	return e
}

func (e *Engine) setup() {
	s, ok := e.cv.Context()
	if !ok {
		e.log.Printf("particlefield: 2d context unavailable, staying idle")
		return
	}
	e.surface = s

	p, err := e.params.Sanitize()
	if err != nil {
		e.log.Printf("particlefield: %v", err)
	}

	geo := e.resizeCanvas()
	if e.reduced {
		base, _ := field.ParseColor(p.Color)
		field.DrawDotGrid(s, geo, base)
		e.listen(EventResize, func(Event) {
			field.DrawDotGrid(s, e.resizeCanvas(), base)
		})
		e.log.Printf("particlefield: reduced motion, static grid %.0fx%.0f", geo.Width, geo.Height)
		return
	}

	f, err := field.New(p, geo, e.rng)
	if err != nil {
		e.log.Printf("particlefield: %v", err)
		return
	}
	e.field = f
	e.log.Printf("particlefield: mode=%s particles=%d viewport=%.0fx%.0f", f.Mode().Name(), f.Len(), geo.Width, geo.Height)

	e.listen(EventResize, e.onResize)
	e.listen(EventPointerMove, e.onPointer)
	e.listen(EventTouchMove, e.onPointer)
	e.start()
}

func (e *Engine) teardown() {
	e.stop()
	for _, id := range e.listeners {
		e.win.RemoveListener(id)
	}
	e.listeners = nil
	e.field = nil
	e.surface = nil
}

// Configure applies a new configuration. Identical parameters are a no-op;
// anything else tears the engine down and mounts it again.
func (e *Engine) Configure(p field.Params) {
	if !e.mounted || p == e.params {
		return
	}
	e.teardown()
	e.params = p
	e.setup()
}

// Unmount cancels the pending frame and removes every listener. It is safe
// to call more than once.
func (e *Engine) Unmount() {
	if !e.mounted {
		return
	}
	e.teardown()
	e.mounted = false
}

func (e *Engine) listen(kind EventKind, fn Listener) {
	e.listeners = append(e.listeners, e.win.AddListener(kind, fn))
}

func (e *Engine) resizeCanvas() field.Geometry {
	w, h := e.win.Size()
	e.cv.Resize(w, h)
	return field.Geometry{Width: w, Height: h}
}

func (e *Engine) onResize(Event) {
	if e.field == nil {
		return
	}
	e.field.Reset(e.resizeCanvas())
}

func (e *Engine) onPointer(ev Event) {
	if !e.params.Interactive {
		return
	}
	ox, oy := e.cv.Offset()
	e.input = InputState{X: ev.X - ox, Y: ev.Y - oy, Known: true}
}

// start begins a loop owned by a fresh generation; stop invalidates it.
func (e *Engine) start() {
	e.gen++
	e.hasLast = false
	e.schedule(e.gen)
}

func (e *Engine) stop() {
	e.gen++
	if e.pending {
		e.win.CancelFrame(e.frame)
		e.pending = false
	}
}

func (e *Engine) schedule(gen uint64) {
	e.frame = e.win.RequestFrame(func(now time.Duration) { e.tick(gen, now) })
	e.pending = true
}

func (e *Engine) tick(gen uint64, now time.Duration) {
	if gen != e.gen || e.field == nil {
		return
	}
	e.pending = false

	dt := refFrame
	if e.hasLast {
		dt = min(max(now-e.last, 0), maxFrameStep)
	}
	e.last, e.hasLast = now, true

	start := e.clock()
	e.field.Step(field.Input{PointerX: e.input.X, PointerY: e.input.Y, HasPointer: e.input.Known}, dt)
	e.field.Draw(e.surface)
	e.frames++

	stats := FrameStats{Frame: e.frames, Now: now, Dt: dt, Work: e.clock().Sub(start), Particles: e.field.Len()}
	for _, o := range e.observers {
		o.OnFrame(stats)
	}

	// an observer may have stopped the loop
	if gen == e.gen {
		e.schedule(gen)
	}
}

func (e *Engine) Params() field.Params { return e.params }
func (e *Engine) Input() InputState    { return e.input }
func (e *Engine) Frames() int          { return e.frames }

// ReducedMotion reports the preference captured at mount.
func (e *Engine) ReducedMotion() bool { return e.reduced }

// Running reports whether an animation frame is scheduled.
func (e *Engine) Running() bool { return e.pending }

// Field is nil while idle, in reduced motion, and after unmount.
func (e *Engine) Field() *field.Field { return e.field }
