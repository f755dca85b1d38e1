package metrics

import (
	"time"

	"github.com/san-kum/particlefield/internal/engine"
)

// FrameRate is the mean frames per second over the observed frames,
// derived from the frame timestamps rather than wall time.
type FrameRate struct {
	name    string
	elapsed time.Duration
	samples int
}

func NewFrameRate() *FrameRate {
	return &FrameRate{name: "fps"}
}

func (f *FrameRate) Name() string { return f.name }

func (f *FrameRate) OnFrame(s engine.FrameStats) {
	f.elapsed += s.Dt
	f.samples++
}

func (f *FrameRate) Value() float64 {
	if f.samples == 0 || f.elapsed <= 0 {
		return 0
	}
	return float64(f.samples) / f.elapsed.Seconds()
}

func (f *FrameRate) Reset() {
	f.elapsed = 0
	f.samples = 0
}

// FrameBudget is the fraction of frames whose update and draw finished
// within budget milliseconds. An empty window counts as fully on budget.
type FrameBudget struct {
	name       string
	budget     time.Duration
	violations int
	samples    int
}

func NewFrameBudget(budgetMs float64) *FrameBudget {
	return &FrameBudget{
		name:   "on_budget",
		budget: time.Duration(budgetMs * float64(time.Millisecond)),
	}
}

func (b *FrameBudget) Name() string { return b.name }

func (b *FrameBudget) OnFrame(s engine.FrameStats) {
	b.samples++
	if s.Work > b.budget {
		b.violations++
	}
}

func (b *FrameBudget) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *FrameBudget) Reset() {
	b.violations = 0
	b.samples = 0
}

// WorkTime records per-frame work in milliseconds. Value is the mean;
// Samples keeps the series for plotting.
type WorkTime struct {
	name    string
	samples []float64
	sum     float64
}

func NewWorkTime() *WorkTime {
	return &WorkTime{name: "work_ms"}
}

func (w *WorkTime) Name() string { return w.name }

func (w *WorkTime) OnFrame(s engine.FrameStats) {
	ms := float64(s.Work) / float64(time.Millisecond)
	w.samples = append(w.samples, ms)
	w.sum += ms
}

func (w *WorkTime) Value() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return w.sum / float64(len(w.samples))
}

func (w *WorkTime) Samples() []float64 { return w.samples }

func (w *WorkTime) Reset() {
	w.samples = w.samples[:0]
	w.sum = 0
}
