package engine_test

import (
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/particlefield/internal/engine"
	"github.com/san-kum/particlefield/internal/field"
)

const frame = time.Second / 60

// tally is a Surface that only counts calls.
type tally struct {
	clears, fills, circles, lines, glows, glyphs int
}

func (t *tally) Clear()                                             { t.clears++ }
func (t *tally) Fill(colorful.Color, float64)                       { t.fills++ }
func (t *tally) Circle(_, _, _ float64, _ colorful.Color, _ float64) { t.circles++ }
func (t *tally) Glow(_, _, _ float64, _ colorful.Color, _ float64)   { t.glows++ }
func (t *tally) SetComposite(field.Composite)                       {}

func (t *tally) Line(_, _, _, _, _ float64, _ colorful.Color, _ float64) {
	t.lines++
}

func (t *tally) Glyph(_, _ float64, _ rune, _ float64, _ colorful.Color, _ float64) {
	t.glyphs++
}

func (t *tally) draws() int { return t.circles + t.lines + t.glows + t.glyphs }

type fakeCanvas struct {
	surface          *tally
	unavailable      bool
	width, height    float64
	resizes          int
	offsetX, offsetY float64
}

func newCanvas() *fakeCanvas { return &fakeCanvas{surface: &tally{}} }

func (c *fakeCanvas) Context() (field.Surface, bool) {
	if c.unavailable {
		return nil, false
	}
	return c.surface, true
}

func (c *fakeCanvas) Resize(w, h float64) {
	c.width, c.height = w, h
	c.resizes++
}

func (c *fakeCanvas) Offset() (float64, float64) { return c.offsetX, c.offsetY }

// pump flushes n frames at 60 Hz starting after the given frame index.
func pump(win *engine.BaseWindow, from, n int) {
	for i := 1; i <= n; i++ {
		win.Flush(time.Duration(from+i) * frame)
	}
}

type frameLog struct {
	stats []engine.FrameStats
	hook  func(engine.FrameStats)
}

func (l *frameLog) OnFrame(s engine.FrameStats) {
	l.stats = append(l.stats, s)
	if l.hook != nil {
		l.hook(s)
	}
}
