package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/san-kum/particlefield/internal/field"
)

// PNG is a raster surface on the canvas software backend. The backend has
// no additive compositing, so the lighter mode paints like source-over.
type PNG struct {
	Background string

	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	font    *canvas.Font
	w, h    int
	op      field.Composite
}

func NewPNG(width, height float64) (*PNG, error) {
	p := &PNG{Background: "#0a0a0a"}
	if err := p.reset(width, height); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PNG) reset(width, height float64) error {
	p.w, p.h = max(int(math.Ceil(width)), 1), max(int(math.Ceil(height)), 1)
	p.backend = softwarebackend.New(p.w, p.h)
	p.cv = canvas.New(p.backend)
	font, err := p.cv.LoadFont(gomono.TTF)
	if err != nil {
		return fmt.Errorf("load glyph font: %w", err)
	}
	p.font = font
	return nil
}

// Resize replaces the backing image, wiping it. A font failure keeps the
// old image; glyphs are the only thing that needs the font.
func (p *PNG) Resize(width, height float64) {
	if err := p.reset(width, height); err != nil {
		p.font = nil
	}
}

func (p *PNG) Bounds() image.Rectangle { return image.Rect(0, 0, p.w, p.h) }

// rgba is a straight-alpha color in the form the canvas parses without
// touching its image loader.
func rgba(c colorful.Color, alpha float64) [4]uint8 {
	r, g, b := c.Clamped().RGB255()
	a := uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	return [4]uint8{r, g, b, a}
}

func (p *PNG) Clear() {
	p.cv.ClearRect(0, 0, float64(p.w), float64(p.h))
}

func (p *PNG) Fill(c colorful.Color, alpha float64) {
	p.cv.SetFillStyle(rgba(c, alpha))
	p.cv.FillRect(0, 0, float64(p.w), float64(p.h))
}

func (p *PNG) Circle(x, y, r float64, c colorful.Color, alpha float64) {
	p.cv.SetFillStyle(rgba(c, alpha))
	p.cv.BeginPath()
	p.cv.Arc(x, y, r, 0, 2*math.Pi, false)
	p.cv.Fill()
}

func (p *PNG) Line(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64) {
	p.cv.SetStrokeStyle(rgba(c, alpha))
	p.cv.SetLineWidth(width)
	p.cv.BeginPath()
	p.cv.MoveTo(x0, y0)
	p.cv.LineTo(x1, y1)
	p.cv.Stroke()
}

func (p *PNG) Glow(x, y, r float64, c colorful.Color, alpha float64) {
	grad := p.cv.CreateRadialGradient(x, y, 0, x, y, r)
	grad.AddColorStop(0, rgba(c, alpha))
	grad.AddColorStop(1, rgba(c, 0))
	p.cv.SetFillStyle(grad)
	p.cv.BeginPath()
	p.cv.Arc(x, y, r, 0, 2*math.Pi, false)
	p.cv.Fill()
}

func (p *PNG) Glyph(x, y float64, g rune, size float64, c colorful.Color, alpha float64) {
	if p.font == nil {
		return
	}
	p.cv.SetFont(p.font, size)
	p.cv.SetFillStyle(rgba(c, alpha))
	p.cv.FillText(string(g), x, y)
}

func (p *PNG) SetComposite(op field.Composite) { p.op = op }

// Image returns the frame flattened onto the background color.
func (p *PNG) Image() *image.RGBA {
	layer := p.cv.GetImageData(0, 0, p.w, p.h)

	out := softwarebackend.New(p.w, p.h)
	cv := canvas.New(out)
	cv.SetFillStyle(p.Background)
	cv.FillRect(0, 0, float64(p.w), float64(p.h))
	cv.DrawImage(layer, 0, 0)
	return cv.GetImageData(0, 0, p.w, p.h)
}

func (p *PNG) Encode(w io.Writer) error {
	return png.Encode(w, p.Image())
}

func (p *PNG) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
