package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/engine"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/metrics"
)

const (
	width  = 80
	height = 24

	densityStep = 5
	speedFactor = 1.25
)

type TickMsg time.Time

// Model hosts an engine in the terminal. The terminal is the window:
// ticks flush its frame queue and mouse and size messages become window
// events.
type Model struct {
	params field.Params
	fps    int

	win    *engine.BaseWindow
	canvas *Canvas
	eng    *engine.Engine
	rate   *metrics.FrameRate

	start     time.Time
	lastRate  time.Time
	shownRate float64

	cols, rows int
	theme      int
	paused     bool
	showHelp   bool
}

// NewModel mounts an engine configured by cfg on a terminal-sized window.
func NewModel(cfg *config.Config, reducedMotion bool, opts ...engine.Option) *Model {
	m := &Model{
		params: cfg.Params(),
		fps:    cfg.FPS,
		canvas: NewCanvas(width, height-statusRows),
		rate:   metrics.NewFrameRate(),
		cols:   width,
		rows:   height,
	}
	if m.fps <= 0 {
		m.fps = config.DefaultFPS
	}
	w, h := viewport(width, height)
	m.win = engine.NewBaseWindow(w, h, reducedMotion)
	opts = append(opts, engine.WithObserver(m.rate))
	m.eng = engine.Mount(m.win, termCanvas{m.canvas}, m.params, opts...)
	return m
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.win.Resize(viewport(msg.Width, msg.Height))
	case tea.MouseMsg:
		m.win.PointerMove(cellCenter(msg.X, msg.Y))
	case TickMsg:
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) frame(now time.Time) {
	if m.start.IsZero() {
		m.start, m.lastRate = now, now
	}
	if !m.paused {
		m.win.Flush(now.Sub(m.start))
	}
	if now.Sub(m.lastRate) >= time.Second {
		m.shownRate = m.rate.Value()
		m.rate.Reset()
		m.lastRate = now
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	p := m.params
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "1", "2", "3", "4":
		p.Mode = field.Modes()[msg.String()[0]-'1'].Name()
	case "i":
		p.Interactive = !p.Interactive
	case "+", "=":
		p.Density += densityStep
	case "-", "_":
		p.Density = max(p.Density-densityStep, 0)
	case "]":
		p.Speed *= speedFactor
	case "[":
		p.Speed /= speedFactor
	case " ":
		m.paused = !m.paused
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	case "?":
		m.showHelp = !m.showHelp
	}
	if p != m.params {
		m.params = p
		m.eng.Configure(p)
	}
	return nil
}

// Close releases the engine's frame and listeners.
func (m *Model) Close() { m.eng.Unmount() }

func (m *Model) Engine() *engine.Engine { return m.eng }
func (m *Model) Canvas() *Canvas        { return m.canvas }

func (m *Model) View() string {
	t := Themes[m.theme]
	var s strings.Builder
	if m.showHelp {
		s.WriteString(t.hints("1-4", "mode", "i", "interactive", "+/-", "density", "[/]", "speed", "space", "pause", "t", "theme", "q", "quit"))
	} else {
		s.WriteString(m.status(t))
	}
	s.WriteByte('\n')
	s.WriteString(strings.TrimSuffix(m.canvas.Render(), "\n"))
	return s.String()
}

func (m *Model) status(t Theme) string {
	parts := []string{t.title().Render(strings.ToUpper(m.params.Mode))}
	switch {
	case m.eng.ReducedMotion():
		parts = append(parts, t.warn().Render("REDUCED MOTION"))
	case m.paused:
		parts = append(parts, t.warn().Render("PAUSED"))
	}
	n := 0
	if f := m.eng.Field(); f != nil {
		n = f.Len()
	}
	parts = append(parts,
		t.pair("particles", fmt.Sprint(n)),
		t.pair("density", fmt.Sprint(m.params.Density)),
		t.pair("speed", fmt.Sprintf("%.2f", m.params.Speed)),
		t.pair("interactive", fmt.Sprint(m.params.Interactive)),
		t.pair("fps", fmt.Sprintf("%.0f", m.shownRate)),
		t.label().Render("? help"),
	)
	return strings.Join(parts, "  ")
}

// Run shows the field full-screen until the user quits.
func Run(cfg *config.Config, reducedMotion bool, opts ...engine.Option) error {
	m := NewModel(cfg, reducedMotion, opts...)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
