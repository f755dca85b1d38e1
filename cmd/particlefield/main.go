package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlefield/internal/automation"
	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/engine"
	"github.com/san-kum/particlefield/internal/export"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/gui"
	"github.com/san-kum/particlefield/internal/metrics"
	"github.com/san-kum/particlefield/internal/storage"
	"github.com/san-kum/particlefield/internal/viz"
)

var (
	configFile    string
	preset        string
	color         string
	density       int
	mode          string
	interactive   bool
	speed         float64
	seed          int64
	fps           int
	reducedMotion string
	width         int
	height        int
	frames        int
	verbose       bool
	dataDir       string

	menu       bool
	benchMode  string
	benchOut   string
	benchSave  bool
	force      bool
	pointerPos []float64

	galleryOut string
	outDir     string
	sweepOut   string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

var modeInfo = map[string]string{
	"default": "drifting dots linked when close",
	"network": "fixed random graph with gentle jitter",
	"fluid":   "additive glowing blobs on sine currents",
	"matrix":  "falling glyph columns with trails",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers the commands; with none given it opens the GUI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "particlefield",
		Short:         "animated particle field backgrounds",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&color, "color", field.DefaultColor, "base color (#rgb or #rrggbb)")
	pf.IntVar(&density, "density", field.DefaultDensity, "particle count before adaptation")
	pf.StringVar(&mode, "mode", "default", "default, network, fluid or matrix")
	pf.BoolVar(&interactive, "interactive", true, "attract particles toward the pointer")
	pf.Float64Var(&speed, "speed", field.DefaultSpeed, "velocity scale")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&reducedMotion, "reduced-motion", config.MotionAuto, "auto, on or off")
	pf.IntVar(&width, "width", config.DefaultWidth, "viewport width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "viewport height in pixels")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "frames to run offscreen")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log lifecycle events to stderr")
	pf.StringVar(&dataDir, "data", ".particlefield", "directory for recorded runs")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "show the field in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "show the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().BoolVar(&menu, "menu", false, "pick a preset first")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file.svg|file.png]",
		Short: "render frames offscreen and save the last one",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Float64SliceVar(&pointerPos, "pointer", nil, "hold the pointer at x,y")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frame cost per mode",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&benchMode, "only", "", "bench a single mode")
	benchCmd.Flags().StringVar(&benchOut, "target", "png", "png or svg surface")
	benchCmd.Flags().BoolVar(&benchSave, "save", false, "record each mode's frames in the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	galleryCmd := &cobra.Command{
		Use:   "gallery [dir]",
		Short: "render every preset side by side",
		Args:  cobra.ExactArgs(1),
		RunE:  runGallery,
	}
	galleryCmd.Flags().StringVar(&galleryOut, "target", "svg", "png or svg files")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted timeline from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&outDir, "out", ".", "directory for saved frames")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure frame cost across a parameter range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "density", "density or speed")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 10, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 200, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().StringVar(&sweepOut, "target", "png", "png or svg surface")

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list modes",
		Args:  cobra.NoArgs,
		RunE:  listModes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, snapshotCmd, benchCmd, runsCmd, showCmd, galleryCmd, scenarioCmd, sweepCmd, modesCmd, presetsCmd, configCmd)
	return rootCmd
}

// resolve builds the configuration: defaults, then the preset, then the
// config file, then any flag set on the command line.
func resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = color
	}
	if flags.Changed("density") {
		cfg.Density = density
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("interactive") {
		cfg.Interactive = interactive
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "", log.LstdFlags|log.Lmicroseconds)
}

func engineOptions(cfg *config.Config, logger *log.Logger) []engine.Option {
	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	return opts
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)
	gui.Run(cfg, cfg.PrefersReducedMotion(os.Getenv), logger, engineOptions(cfg, logger)...)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	// the terminal is busy drawing, so logs go to a file
	logger := log.New(io.Discard, "", 0)
	if verbose {
		f, err := os.Create("particlefield.log")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = newLogger(f)
	}

	reduced := cfg.PrefersReducedMotion(os.Getenv)
	if menu {
		return viz.RunInteractive(cfg, reduced, engineOptions(cfg, logger)...)
	}
	return viz.Run(cfg, reduced, engineOptions(cfg, logger)...)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	path := args[0]
	target, err := export.New(export.KindOf(path), float64(cfg.Width), float64(cfg.Height))
	if err != nil {
		return err
	}

	opts := export.Options{
		Width:         float64(cfg.Width),
		Height:        float64(cfg.Height),
		Frames:        cfg.Frames,
		FPS:           cfg.FPS,
		ReducedMotion: cfg.PrefersReducedMotion(os.Getenv),
	}
	if len(pointerPos) == 2 {
		opts.Pointer = &[2]float64{pointerPos[0], pointerPos[1]}
	} else if len(pointerPos) != 0 {
		return fmt.Errorf("--pointer takes x,y")
	}

	res := export.Render(target, cfg.Params(), opts, engineOptions(cfg, logger)...)
	if err := target.Save(path); err != nil {
		return err
	}
	logger.Printf("snapshot: %s written after %d frames", path, res.Frames)
	fmt.Printf("%s: %s, %d particles, %d frames\n", path, cfg.Mode, res.Particles, res.Frames)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	modes := field.Modes()
	if benchMode != "" {
		m, err := field.ParseMode(benchMode)
		if err != nil {
			return err
		}
		modes = []field.Mode{m}
	}

	fmt.Printf("benchmarking %dx%d, %d frames, density %d\n\n", cfg.Width, cfg.Height, cfg.Frames, cfg.Density)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tPARTICLES\tFRAMES\tMEAN\tP95\tON BUDGET")

	var series [][]float64
	var names, saved []string
	st := storage.New(dataDir)
	if benchSave {
		if err := st.Init(); err != nil {
			return err
		}
	}
	for _, m := range modes {
		target, err := export.New(benchOut, float64(cfg.Width), float64(cfg.Height))
		if err != nil {
			return err
		}
		p := cfg.Params()
		p.Mode = m.Name()

		work := metrics.NewWorkTime()
		budget := metrics.NewFrameBudget(1000 / float64(cfg.FPS))
		rec := &storage.Recorder{}
		opts := append(engineOptions(cfg, logger), engine.WithObserver(work), engine.WithObserver(budget), engine.WithObserver(rec))
		res := export.Render(target, p, export.Options{
			Width:  float64(cfg.Width),
			Height: float64(cfg.Height),
			Frames: cfg.Frames,
			FPS:    cfg.FPS,
		}, opts...)

		fmt.Fprintf(w, "%s\t%d\t%d\t%.3fms\t%.3fms\t%.0f%%\n",
			m.Name(), res.Particles, res.Frames, work.Value(), percentile(work.Samples(), 0.95), budget.Value()*100)

		if benchSave {
			id, err := st.Save(storage.RunMetadata{
				Mode:        p.Mode,
				Color:       p.Color,
				Density:     p.Density,
				Speed:       p.Speed,
				Interactive: p.Interactive,
				Seed:        cfg.Seed,
				Width:       cfg.Width,
				Height:      cfg.Height,
				Target:      benchOut,
				Particles:   res.Particles,
				Metrics:     map[string]float64{work.Name(): work.Value(), budget.Name(): budget.Value()},
			}, rec.Frames())
			if err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			saved = append(saved, id)
		}

		if len(work.Samples()) > 0 {
			series = append(series, slices.Clone(work.Samples()))
			names = append(names, m.Name())
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series) > 0 {
		graph := asciigraph.PlotMany(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow),
			asciigraph.SeriesLegends(names...),
			asciigraph.Caption("work per frame (ms)"),
		)
		fmt.Printf("\n%s\n", graph)
	}
	for _, id := range saved {
		fmt.Printf("saved run: %s\n", id)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tVIEWPORT\tPARTICLES\tFRAMES\tMEAN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.3fms\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Particles,
			run.Frames,
			run.Metrics["work_ms"],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s  color: %s  density: %d  speed: %.2f\n", meta.Mode, meta.Color, meta.Density, meta.Speed)
	fmt.Printf("frames: %d\n\n", len(frames))

	work := make([]float64, len(frames))
	for i, f := range frames {
		work[i] = float64(f.Work) / float64(time.Millisecond)
	}
	fmt.Println(asciigraph.Plot(work,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("work per frame (ms)"),
	))
	return nil
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	dir := args[0]
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	shotSeed := cfg.Seed
	if shotSeed == 0 {
		shotSeed = 1
	}
	var shots []export.Shot
	for _, name := range config.ListPresets() {
		shots = append(shots, export.Shot{Name: name, Params: config.GetPreset(name).Params(), Seed: shotSeed})
	}

	results, err := export.Gallery(context.Background(), dir, galleryOut, shots, export.Options{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Frames: cfg.Frames,
		FPS:    cfg.FPS,
	}, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMODE\tPARTICLES\tFILE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Name, r.Params.Mode, r.Particles, r.Path)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	fmt.Printf("scenario %s: %s\n\n", scenario.Name, scenario.Description)
	results, err := automation.RunScenario(context.Background(), scenario, outDir, logger, engine.WithLogger(logger))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODE\tPARTICLES\tFRAMES\tSAVED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", r.Step, r.Mode, r.Particles, r.Frames, r.SavedTo)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	sweep := &automation.ParameterSweep{
		Base:      cfg.Params(),
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    cfg.Frames,
		Width:     float64(cfg.Width),
		Height:    float64(cfg.Height),
		Output:    sweepOut,
	}
	results, err := automation.RunSweep(context.Background(), sweep, logger, engineOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPARTICLES\tMEAN\tON BUDGET\n", strings.ToUpper(sweepParam))
	costs := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.2f\t%d\t%.3fms\t%.0f%%\n", r.ParamValue, r.Particles, r.MeanWorkMs, r.OnBudget*100)
		costs = append(costs, r.MeanWorkMs)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(costs) > 1 {
		graph := asciigraph.Plot(costs,
			asciigraph.Height(8),
			asciigraph.Caption(fmt.Sprintf("mean work per frame (ms) by %s", sweepParam)),
		)
		fmt.Printf("\n%s\n", graph)
	}
	return nil
}

// percentile returns the q-th quantile of xs by nearest rank.
func percentile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := slices.Clone(xs)
	slices.Sort(s)
	i := int(q*float64(len(s))+0.5) - 1
	return s[min(max(i, 0), len(s)-1)]
}

func listModes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tMULTIPLIER\tDESCRIPTION")
	for _, m := range field.Modes() {
		fmt.Fprintf(w, "%s\tx%d\t%s\n", m.Name(), m.Multiplier(), modeInfo[m.Name()])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMODE\tCOLOR\tDENSITY\tSPEED\tINTERACTIVE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%v\n", name, p.Mode, p.Color, p.Density, p.Speed, p.Interactive)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
