package gui

import (
	"fmt"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/engine"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/metrics"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	densityStep = 5
	speedFactor = 1.25
)

// fontPaths are tried in order; the first that exists wins. The field's
// glyphs need a face with half-width katakana.
var fontPaths = []string{
	"/usr/share/fonts/noto-cjk/NotoSansMonoCJKjp-Regular.otf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/liberation/LiberationMono-Regular.ttf",
}

// App owns the raylib window and acts as both the engine's window and
// its canvas.
type App struct {
	win     *engine.BaseWindow
	eng     *engine.Engine
	surface *surface
	params  field.Params
	budget  *metrics.FrameBudget
	log     *log.Logger

	lastMouse rl.Vector2
	showHUD   bool
}

var _ engine.Canvas = (*App)(nil)

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "particlefield")
	rl.SetTargetFPS(int32(cfg.FPS))
}

// loadFont loads the first available face with the glyph set baked in,
// falling back to raylib's built-in font.
func loadFont() rl.Font {
	runes := []rune(" 0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz:.-[]/")
	runes = append(runes, field.Glyphs...)
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		font := rl.LoadFontEx(path, 32, runes)
		rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
		return font
	}
	return rl.GetFontDefault()
}

// NewApp mounts an engine on the open window.
func NewApp(cfg *config.Config, reducedMotion bool, logger *log.Logger, opts ...engine.Option) *App {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	a := &App{
		win:     engine.NewBaseWindow(w, h, reducedMotion),
		surface: &surface{font: loadFont()},
		params:  cfg.Params(),
		budget:  metrics.NewFrameBudget(1000 / float64(max(cfg.FPS, 1))),
		log:     logger,
		showHUD: true,
	}
	opts = append(opts, engine.WithLogger(logger), engine.WithObserver(a.budget))
	a.Resize(w, h)
	a.eng = engine.Mount(a.win, a, a.params, opts...)
	a.surface.end()
	a.lastMouse = rl.GetMousePosition()
	return a
}

// Run opens a window and shows the field until it is closed.
func Run(cfg *config.Config, reducedMotion bool, logger *log.Logger, opts ...engine.Option) {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(cfg, reducedMotion, logger, opts...)
	logger.Printf("gui: window %dx%d open", rl.GetScreenWidth(), rl.GetScreenHeight())
	app.RunLoop()
	app.Close()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Close unmounts the engine and frees the render texture.
func (a *App) Close() {
	a.eng.Unmount()
	a.log.Printf("gui: closed after %d frames", a.eng.Frames())
	a.surface.end()
	if a.surface.target.ID != 0 {
		rl.UnloadRenderTexture(a.surface.target)
		a.surface.target = rl.RenderTexture2D{}
	}
}

// Context hands out the texture surface. It is unavailable until Resize
// has created a texture.
func (a *App) Context() (field.Surface, bool) {
	if a.surface == nil || a.surface.target.ID == 0 {
		return nil, false
	}
	return a.surface, true
}

func (a *App) Resize(width, height float64) {
	w, h := int32(width), int32(height)
	s := a.surface
	s.end()
	if s.target.ID != 0 && s.w == w && s.h == h {
		return
	}
	if s.target.ID != 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(w, h)
	s.w, s.h = w, h
}

func (a *App) Offset() (float64, float64) { return 0, 0 }

// Update pumps window events into the engine, then runs due frames.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.win.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	if m := rl.GetMousePosition(); m != a.lastMouse {
		a.lastMouse = m
		a.win.PointerMove(float64(m.X), float64(m.Y))
	}
	if rl.GetTouchPointCount() > 0 {
		t := rl.GetTouchPosition(0)
		a.win.TouchMove(float64(t.X), float64(t.Y))
	}

	for _, k := range watchedKeys {
		if rl.IsKeyPressed(k) {
			a.handleKey(k)
		}
	}

	a.win.Flush(time.Duration(rl.GetTime() * float64(time.Second)))
	a.surface.end()
}

var watchedKeys = []int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour,
	rl.KeyI, rl.KeyEqual, rl.KeyMinus, rl.KeyLeftBracket, rl.KeyRightBracket, rl.KeyH,
}

func (a *App) handleKey(k int32) {
	if k == rl.KeyH {
		a.showHUD = !a.showHUD
		return
	}
	p, changed := applyKey(a.params, k)
	if !changed {
		return
	}
	a.params = p
	a.eng.Configure(p)
}

// applyKey maps a key press to new field parameters.
func applyKey(p field.Params, k int32) (field.Params, bool) {
	old := p
	switch k {
	case rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour:
		p.Mode = field.Modes()[k-rl.KeyOne].Name()
	case rl.KeyI:
		p.Interactive = !p.Interactive
	case rl.KeyEqual:
		p.Density += densityStep
	case rl.KeyMinus:
		p.Density = max(p.Density-densityStep, 0)
	case rl.KeyRightBracket:
		p.Speed *= speedFactor
	case rl.KeyLeftBracket:
		p.Speed /= speedFactor
	}
	return p, p != old
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	s := a.surface
	if s.target.ID != 0 {
		// render textures are stored upside down
		src := rl.NewRectangle(0, 0, float32(s.w), -float32(s.h))
		rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
	}
	if a.showHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("particlefield", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.params.Mode), 220, 34, 16, ColText)

	status := "ANIMATED"
	if a.eng.ReducedMotion() {
		status = "REDUCED MOTION"
	}
	n := 0
	if f := a.eng.Field(); f != nil {
		n = f.Len()
	}
	h := int(rl.GetScreenHeight())
	a.drawText(fmt.Sprintf("%s  %d particles  density %d  speed %.2f  interactive %v",
		status, n, a.params.Density, a.params.Speed, a.params.Interactive), 30, 60, 14, ColText)
	a.drawText(fmt.Sprintf("%d FPS  %.0f%% on budget", rl.GetFPS(), a.budget.Value()*100), 30, h-40, 14, ColTextDim)
	a.drawText("[1-4] MODE  [I] INTERACTIVE  [+/-] DENSITY  [ [ ] ] SPEED  [H] HUD  [ESC] QUIT", 30, h-20, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.surface.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
