package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/engine"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ticks(m tea.Model, n int) {
	for i := 0; i < n; i++ {
		m.Update(TickMsg(t0.Add(time.Duration(i) * time.Second / 60)))
	}
}

func newTestModel(t *testing.T, reduced bool) *Model {
	t.Helper()
	m := NewModel(config.DefaultConfig(), reduced, engine.WithSeed(42))
	t.Cleanup(m.Close)
	return m
}

func TestModel_TicksDriveFrames(t *testing.T) {
	m := newTestModel(t, false)
	if !m.Engine().Running() {
		t.Fatal("expected the loop to be running")
	}

	ticks(m, 5)
	if m.Engine().Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", m.Engine().Frames())
	}
	if cmd := m.Init(); cmd == nil {
		t.Error("expected a tick command")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, false)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})

	if m.Canvas().Width != 40 || m.Canvas().Height != 10 {
		t.Errorf("expected 40x10 canvas, got %dx%d", m.Canvas().Width, m.Canvas().Height)
	}
	// 480px wide is below the mobile breakpoint
	if n := m.Engine().Field().Len(); n != 15 {
		t.Errorf("expected 15 particles on a narrow terminal, got %d", n)
	}
}

func TestModel_MouseIsCanvasLocal(t *testing.T) {
	m := newTestModel(t, false)
	m.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	want := engine.InputState{X: 10.5 * CellWidth, Y: 4.5 * CellHeight, Known: true}
	if got := m.Engine().Input(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel(t, false)

	m.Update(key("4"))
	if got := m.Engine().Params().Mode; got != "matrix" {
		t.Errorf("expected matrix, got %s", got)
	}
	if n := m.Engine().Field().Len(); n != 60 {
		t.Errorf("expected doubled matrix count 60, got %d", n)
	}

	m.Update(key("-"))
	if got := m.Engine().Params().Density; got != 25 {
		t.Errorf("expected density 25, got %d", got)
	}

	m.Update(key("i"))
	if m.Engine().Params().Interactive {
		t.Error("expected interactivity off")
	}

	for i := 0; i < 10; i++ {
		m.Update(key("-"))
	}
	if got := m.Engine().Params().Density; got != 0 {
		t.Errorf("density went below zero: %d", got)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModel_Pause(t *testing.T) {
	m := newTestModel(t, false)
	ticks(m, 2)
	m.Update(key(" "))
	ticks(m, 5)

	if m.Engine().Frames() != 2 {
		t.Errorf("expected frames to stop at 2, got %d", m.Engine().Frames())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("status line does not show pause")
	}
}

func TestModel_ReducedMotion(t *testing.T) {
	m := newTestModel(t, true)
	ticks(m, 5)

	if m.Engine().Frames() != 0 || m.Engine().Running() {
		t.Error("reduced motion must not animate")
	}
	view := m.View()
	if !strings.Contains(view, "REDUCED MOTION") {
		t.Error("status line does not show reduced motion")
	}
	if !strings.ContainsFunc(view, func(r rune) bool { return r > brailleBase && r < brailleBase+0x100 }) {
		t.Error("static grid not rendered")
	}
}

func TestModel_ViewHelp(t *testing.T) {
	m := newTestModel(t, false)
	if !strings.Contains(m.View(), "DEFAULT") {
		t.Error("status line missing mode")
	}
	m.Update(key("?"))
	if !strings.Contains(m.View(), "density") || strings.Contains(m.View(), "DEFAULT") {
		t.Error("help line not shown")
	}
	m.Update(key("t"))
	if m.theme != 1 {
		t.Errorf("expected theme 1, got %d", m.theme)
	}
}

func TestMenu_StartsPreset(t *testing.T) {
	m := newMenu(config.DefaultConfig(), false, engine.WithSeed(1))
	t.Cleanup(m.close)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	for m.items[m.cursor] != "rain" {
		m.Update(key("j"))
	}
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected start commands")
	}
	if m.state != stateLive {
		t.Fatal("expected live state")
	}
	if got := m.live.Engine().Params().Mode; got != "matrix" {
		t.Errorf("expected rain preset to run matrix, got %s", got)
	}

	ticks(m, 3)
	if m.live.Engine().Frames() != 3 {
		t.Errorf("menu did not forward ticks, %d frames", m.live.Engine().Frames())
	}
}

func TestMenu_CustomKeepsBase(t *testing.T) {
	base := config.DefaultConfig()
	base.Mode = "fluid"
	m := newMenu(base, false)

	if m.items[0] != customItem {
		t.Fatalf("expected custom first, got %v", m.items)
	}
	if got := m.selected(); got.Mode != "fluid" {
		t.Errorf("expected base mode, got %s", got.Mode)
	}
	m.Update(key("k"))
	if m.cursor != 0 {
		t.Error("cursor moved above the first item")
	}
	if !strings.Contains(m.View(), "PARTICLEFIELD") {
		t.Error("menu title missing")
	}
}
