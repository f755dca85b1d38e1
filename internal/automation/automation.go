package automation

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlefield/internal/engine"
	"github.com/san-kum/particlefield/internal/export"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/metrics"
)

// Scenario is a scripted timeline for one engine: each step changes the
// configuration or the window, runs some frames and may save the result.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Width       float64        `yaml:"width"`
	Height      float64        `yaml:"height"`
	Output      string         `yaml:"output"`
	Seed        int64          `yaml:"seed"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep fields left empty keep the previous step's values.
type ScenarioStep struct {
	Frames      int       `yaml:"frames"`
	Mode        string    `yaml:"mode"`
	Color       string    `yaml:"color"`
	Density     *int      `yaml:"density"`
	Interactive *bool     `yaml:"interactive"`
	Speed       *float64  `yaml:"speed"`
	Pointer     []float64 `yaml:"pointer"`
	Resize      []float64 `yaml:"resize"`
	SaveAs      string    `yaml:"save_as"`
}

type StepResult struct {
	Step      int
	Mode      string
	Particles int
	Frames    int
	SavedTo   string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if scenario.Output == "" {
		scenario.Output = "svg"
	}
	if scenario.Width <= 0 || scenario.Height <= 0 {
		scenario.Width, scenario.Height = 1280, 720
	}

	return &scenario, nil
}

func (s ScenarioStep) apply(p field.Params) field.Params {
	if s.Mode != "" {
		p.Mode = s.Mode
	}
	if s.Color != "" {
		p.Color = s.Color
	}
	if s.Density != nil {
		p.Density = *s.Density
	}
	if s.Interactive != nil {
		p.Interactive = *s.Interactive
	}
	if s.Speed != nil {
		p.Speed = *s.Speed
	}
	return p
}

func pair(v []float64, what string, step int) (float64, float64, bool, error) {
	switch len(v) {
	case 0:
		return 0, 0, false, nil
	case 2:
		return v[0], v[1], true, nil
	}
	return 0, 0, false, fmt.Errorf("step %d: %s needs two values, got %d", step, what, len(v))
}

// RunScenario executes all steps against a single engine, so mode and
// density changes go through reconfiguration and resizes through the
// window, as they would in a live host. Saved files land in dir.
func RunScenario(ctx context.Context, scenario *Scenario, dir string, logger *log.Logger, opts ...engine.Option) ([]StepResult, error) {
	target, err := export.New(scenario.Output, scenario.Width, scenario.Height)
	if err != nil {
		return nil, err
	}
	if scenario.Seed != 0 {
		opts = append(opts, engine.WithSeed(scenario.Seed))
	}

	params := field.DefaultParams()
	if len(scenario.Steps) > 0 {
		params = scenario.Steps[0].apply(params)
	}
	sess := export.NewSession(target, params, export.Options{Width: scenario.Width, Height: scenario.Height}, opts...)
	defer sess.Close()

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Printf("Running step %d/%d: %s", i+1, len(scenario.Steps), step.apply(params).Mode)

		w, h, resize, err := pair(step.Resize, "resize", i+1)
		if err != nil {
			return results, err
		}
		px, py, point, err := pair(step.Pointer, "pointer", i+1)
		if err != nil {
			return results, err
		}

		params = step.apply(params)
		sess.Engine.Configure(params)
		if resize {
			sess.Window.Resize(w, h)
		}
		if point {
			sess.Window.PointerMove(px, py)
		}

		before := sess.Engine.Frames()
		sess.Run(step.Frames)

		r := StepResult{Step: i + 1, Mode: params.Mode, Frames: sess.Engine.Frames() - before}
		if f := sess.Engine.Field(); f != nil {
			r.Particles = f.Len()
		}
		if step.SaveAs != "" {
			r.SavedTo = filepath.Join(dir, step.SaveAs)
			if err := target.Save(r.SavedTo); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, r)
	}

	return results, nil
}

// ParameterSweep measures frame cost across a range of one parameter.
type ParameterSweep struct {
	Base      field.Params
	ParamName string // density or speed
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	Width     float64
	Height    float64
	Output    string
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Particles  int
	MeanWorkMs float64
	OnBudget   float64
}

func (s *ParameterSweep) params(v float64) (field.Params, error) {
	p := s.Base
	switch s.ParamName {
	case "density":
		p.Density = int(math.Round(v))
	case "speed":
		p.Speed = v
	default:
		return p, fmt.Errorf("parameter %q cannot be swept (use density or speed)", s.ParamName)
	}
	return p, nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *log.Logger, opts ...engine.Option) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		paramVal := sweep.ParamMin + float64(i)*paramStep
		p, err := sweep.params(paramVal)
		if err != nil {
			return nil, err
		}

		target, err := export.New(sweep.Output, sweep.Width, sweep.Height)
		if err != nil {
			return nil, err
		}
		work := metrics.NewWorkTime()
		budget := metrics.NewFrameBudget(1000 / field.ReferenceFPS)
		runOpts := append(append([]engine.Option(nil), opts...), engine.WithObserver(work), engine.WithObserver(budget))

		res := export.Render(target, p, export.Options{Width: sweep.Width, Height: sweep.Height, Frames: sweep.Frames}, runOpts...)
		results = append(results, SweepResult{
			ParamValue: paramVal,
			Particles:  res.Particles,
			MeanWorkMs: work.Value(),
			OnBudget:   budget.Value(),
		})

		logger.Printf("Sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
