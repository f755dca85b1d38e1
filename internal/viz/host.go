package viz

import (
	"math"

	"github.com/san-kum/particlefield/internal/field"
)

// statusRows is the number of terminal rows above the canvas.
const statusRows = 1

// CellWidth and CellHeight are one terminal cell in canvas pixels.
const (
	CellWidth  = 2 * PxPerDot
	CellHeight = 4 * PxPerDot
)

// termCanvas adapts Canvas to the engine's canvas contract. The canvas
// sits below the status line, so window coordinates are offset by it.
// Resizing wipes the content like an HTML canvas does.
type termCanvas struct {
	*Canvas
}

func (t termCanvas) Context() (field.Surface, bool) { return t.Canvas, true }

func (t termCanvas) Resize(width, height float64) {
	w := int(math.Ceil(width / CellWidth))
	h := int(math.Ceil(height / CellHeight))
	t.SetSize(w, h)
}

func (t termCanvas) Offset() (float64, float64) { return 0, statusRows * CellHeight }

// viewport converts a terminal size in cells to the window size in pixels.
func viewport(cols, rows int) (float64, float64) {
	rows = max(rows-statusRows, 0)
	return float64(cols) * CellWidth, float64(rows) * CellHeight
}

// cellCenter converts a terminal cell to window pixels.
func cellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}
