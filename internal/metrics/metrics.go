package metrics

import "github.com/san-kum/particlefield/internal/engine"

// Metric is a frame observer that reduces the frames it has seen to one
// number.
type Metric interface {
	engine.Observer
	Name() string
	Value() float64
	Reset()
}

// All returns a fresh instance of every metric, for hosts that report
// them together.
func All(budget float64) []Metric {
	return []Metric{
		NewFrameRate(),
		NewFrameBudget(budget),
		NewWorkTime(),
	}
}
