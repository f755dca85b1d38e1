package automation

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/particlefield/internal/field"
)

var quiet = log.New(io.Discard, "", 0)

const scenarioYAML = `
name: tour
description: every mode once
seed: 7
steps:
  - frames: 5
    save_as: default.svg
  - mode: matrix
    density: 10
    frames: 5
  - resize: [400, 300]
    pointer: [200, 150]
    frames: 3
    save_as: narrow.svg
  - mode: fluid
    interactive: false
    speed: 0.5
    frames: 2
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Name != "tour" || len(s.Steps) != 4 {
		t.Fatalf("unexpected scenario %+v", s)
	}
	if s.Output != "svg" || s.Width != 1280 || s.Height != 720 {
		t.Errorf("defaults not applied: %s %.0fx%.0f", s.Output, s.Width, s.Height)
	}
	if s.Steps[1].Density == nil || *s.Steps[1].Density != 10 {
		t.Error("density not parsed")
	}
	if s.Steps[0].Density != nil {
		t.Error("unset density should stay nil")
	}
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	res, err := RunScenario(context.Background(), s, dir, quiet)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res) != 4 {
		t.Fatalf("expected 4 step results, got %d", len(res))
	}

	want := []struct {
		mode      string
		particles int
		frames    int
	}{
		{"default", 30, 5},
		{"matrix", 20, 5},
		{"matrix", 10, 3},
		{"fluid", 5, 2},
	}
	for i, w := range want {
		r := res[i]
		if r.Mode != w.mode || r.Particles != w.particles || r.Frames != w.frames {
			t.Errorf("step %d: got %s/%d/%d, want %s/%d/%d", i+1, r.Mode, r.Particles, r.Frames, w.mode, w.particles, w.frames)
		}
	}
	for _, name := range []string{"default.svg", "narrow.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not saved", name)
		}
	}
	if res[2].SavedTo != filepath.Join(dir, "narrow.svg") {
		t.Errorf("unexpected save path %s", res[2].SavedTo)
	}
}

func TestRunScenario_Errors(t *testing.T) {
	bad := &Scenario{Width: 100, Height: 100, Output: "svg", Steps: []ScenarioStep{{Frames: 1, Resize: []float64{1}}}}
	if _, err := RunScenario(context.Background(), bad, t.TempDir(), quiet); err == nil {
		t.Error("expected resize error")
	}

	format := &Scenario{Width: 100, Height: 100, Output: "bmp"}
	if _, err := RunScenario(context.Background(), format, t.TempDir(), quiet); err == nil {
		t.Error("expected format error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := &Scenario{Width: 100, Height: 100, Output: "svg", Steps: []ScenarioStep{{Frames: 1}}}
	if _, err := RunScenario(ctx, ok, t.TempDir(), quiet); err != context.Canceled {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Base:      field.DefaultParams(),
		ParamName: "density",
		ParamMin:  0,
		ParamMax:  40,
		NumSteps:  3,
		Frames:    4,
		Width:     1280,
		Height:    720,
		Output:    "svg",
	}

	res, err := RunSweep(context.Background(), sweep, quiet)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	for i, want := range []int{0, 20, 40} {
		if res[i].Particles != want {
			t.Errorf("step %d: expected %d particles, got %d", i, want, res[i].Particles)
		}
		if res[i].OnBudget < 0 || res[i].OnBudget > 1 {
			t.Errorf("step %d: budget fraction out of range: %f", i, res[i].OnBudget)
		}
	}
}

func TestRunSweep_Errors(t *testing.T) {
	base := ParameterSweep{Base: field.DefaultParams(), ParamName: "color", NumSteps: 2, Output: "svg", Width: 10, Height: 10}
	if _, err := RunSweep(context.Background(), &base, quiet); err == nil {
		t.Error("expected unsweepable parameter error")
	}

	base.ParamName = "speed"
	base.NumSteps = 0
	if _, err := RunSweep(context.Background(), &base, quiet); err == nil {
		t.Error("expected step count error")
	}

	base.NumSteps = 1
	base.ParamMin = 2
	res, err := RunSweep(context.Background(), &base, quiet)
	if err != nil || len(res) != 1 || res[0].ParamValue != 2 {
		t.Errorf("single step sweep: %v %+v", err, res)
	}
}

func TestSweepParams_RoundsDensity(t *testing.T) {
	sweep := &ParameterSweep{Base: field.DefaultParams(), ParamName: "density"}
	tests := []struct {
		value float64
		want  int
	}{
		{2.4, 2},
		{2.5, 3},
		{-0.4, 0},
		{-1.6, -2},
		{-2.5, -3},
	}
	for _, tt := range tests {
		p, err := sweep.params(tt.value)
		if err != nil {
			t.Fatalf("params(%.1f): %v", tt.value, err)
		}
		if p.Density != tt.want {
			t.Errorf("params(%.1f) density = %d, want %d", tt.value, p.Density, tt.want)
		}
	}
}
