package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/engine"
)

const (
	stateMenu = iota
	stateLive
)

var presetInfo = map[string]string{
	"hero":          "drifting dots with links",
	"constellation": "fixed network graph",
	"aurora":        "additive glowing blobs",
	"rain":          "falling glyph columns",
	"calm":          "sparse slow dots",
}

const customItem = "custom"

// menu picks a preset, or the loaded configuration, before handing the
// terminal to a live Model.
type menu struct {
	state, cursor int
	items         []string
	base          *config.Config
	reduced       bool
	opts          []engine.Option
	live          *Model
	width, height int
}

func newMenu(base *config.Config, reducedMotion bool, opts ...engine.Option) *menu {
	return &menu{
		state:   stateMenu,
		items:   append([]string{customItem}, config.ListPresets()...),
		base:    base,
		reduced: reducedMotion,
		opts:    opts,
	}
}

func (m *menu) Init() tea.Cmd { return nil }

func (m *menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		_, cmd := m.live.Update(msg)
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.menuKey(msg)
	}
	return m, nil
}

func (m *menu) menuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return nil
}

// selected returns the configuration for the highlighted item. Presets keep
// the base file's host settings.
func (m *menu) selected() *config.Config {
	name := m.items[m.cursor]
	cfg := *m.base
	if p := config.GetPreset(name); p != nil {
		cfg.Color, cfg.Density, cfg.Mode = p.Color, p.Density, p.Mode
		cfg.Interactive, cfg.Speed = p.Interactive, p.Speed
	}
	return &cfg
}

func (m *menu) start() tea.Cmd {
	m.live = NewModel(m.selected(), m.reduced, m.opts...)
	m.state = stateLive
	cmds := []tea.Cmd{m.live.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

func (m *menu) close() {
	if m.live != nil {
		m.live.Close()
	}
}

func (m *menu) View() string {
	if m.state == stateLive {
		return m.live.View()
	}
	t := Themes[0]
	var b strings.Builder
	b.WriteString("\n\n    " + t.title().Render("PARTICLEFIELD") + "\n    " + t.label().Render("animated particle backgrounds") + "\n    " + t.label().Render("─────────────────────────────") + "\n\n")
	for i, name := range m.items {
		desc := presetInfo[name]
		if name == customItem {
			desc = fmt.Sprintf("%s, density %d", m.base.Mode, m.base.Density)
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", t.key().Render("▸"), t.value().Bold(true).Render(fmt.Sprintf("%-14s", name)), t.title().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", t.label().Render(fmt.Sprintf("%-14s", name)), t.label().Render(desc)))
		}
	}
	b.WriteString("\n    " + t.hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu and then the chosen field.
func RunInteractive(base *config.Config, reducedMotion bool, opts ...engine.Option) error {
	m := newMenu(base, reducedMotion, opts...)
	defer m.close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
