// Package field implements the particle field simulation.
//
// A [Field] owns a fixed-size particle collection spawned for one of the
// four modes and advances it one frame at a time:
//
//   - [Default]: drifting dots, proximity lines, pointer attraction
//   - [Network]: fixed per-particle connections, jitter, gentle long-range pull
//   - [Fluid]: additive radial glows on an oscillating drift
//   - [Matrix]: falling glyphs over a decaying trail
//
// The update step is a pure function of the particle slice, the pointer
// [Input] and the frame [Tick], see [Advance]. Drawing goes through the
// [Surface] interface so any host (window, terminal, SVG, PNG) can render it.
//
// # Example
//
//	params := field.DefaultParams()
//	params.Mode = "network"
//	f, _ := field.New(params, field.Geometry{Width: 1280, Height: 720}, rng)
//	f.Step(field.Input{}, time.Second/60)
//	f.Draw(surface)
//
// # Thread Safety
//
// A Field is NOT thread-safe. It is meant to be driven from a single frame
// loop together with the event handlers feeding its input.
package field
