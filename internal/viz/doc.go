// Package viz hosts a particle field in the terminal.
//
// The terminal plays the browser window: Bubble Tea ticks flush the
// engine's frame queue, mouse motion becomes pointer events and window
// size messages become resizes. Drawing goes to a [Canvas] of braille
// cells, each holding 2x4 dots with an intensity, so translucent trails
// and glows fade instead of snapping on and off.
//
// # Key Bindings
//
//	1-4   - default, network, fluid, matrix
//	i     - toggle pointer attraction
//	+/-   - density
//	[/]   - speed
//	Space - pause
//	T     - cycle status line themes
//	?     - show key hints
package viz
