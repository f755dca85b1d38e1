package field

import "math"

// sineTable samples one period of sin for the fluid drift, which evaluates
// two trig calls per particle per frame.
type sineTable struct {
	values []float64
	step   float64
}

var fluidTrig = newSineTable(2048)

func newSineTable(n int) *sineTable {
	t := &sineTable{values: make([]float64, n+1), step: 2 * math.Pi / float64(n)}
	for i := range t.values {
		t.values[i] = math.Sin(float64(i) * t.step)
	}
	return t
}

// sin interpolates linearly between samples.
func (t *sineTable) sin(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	pos := x / t.step
	i := int(pos)
	if i >= len(t.values)-1 {
		return t.values[len(t.values)-1]
	}
	frac := pos - float64(i)
	return t.values[i]*(1-frac) + t.values[i+1]*frac
}

func (t *sineTable) cos(x float64) float64 {
	return t.sin(x + math.Pi/2)
}
