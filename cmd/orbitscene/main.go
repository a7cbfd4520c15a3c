package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitscene/internal/automation"
	"github.com/san-kum/orbitscene/internal/bench"
	"github.com/san-kum/orbitscene/internal/config"
	"github.com/san-kum/orbitscene/internal/export"
	"github.com/san-kum/orbitscene/internal/gui"
	"github.com/san-kum/orbitscene/internal/logx"
	"github.com/san-kum/orbitscene/internal/loop"
	"github.com/san-kum/orbitscene/internal/metrics"
	"github.com/san-kum/orbitscene/internal/scene"
	"github.com/san-kum/orbitscene/internal/store"
	"github.com/san-kum/orbitscene/internal/tui"
	"github.com/san-kum/orbitscene/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string

	// scene overrides
	objects      int
	rotation     float64
	speed        float64
	wireframe    bool
	orbit        bool
	seed         int64
	frameRate    int
	theme        string
	rotationMode string
	strict       bool

	// headless
	frames      int
	realtime    bool
	dump        bool
	save        bool
	cols        int
	rows        int
	members     int
	concurrency int
	exportPath  string
	svgPath     string
)

// main registers the orbitscene commands. With no subcommand it opens the
// terminal view.
func main() {
	rootCmd := &cobra.Command{
		Use:          "orbitscene",
		Short:        "orbiting 3d shapes in the terminal or a window",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orbitscene", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "orbitscene.log", "log file for the terminal view")
	pf.IntVar(&objects, "objects", config.DefaultObjectCount, "number of objects")
	pf.Float64Var(&rotation, "rotation", config.DefaultRotationSpeed, "rotation speed")
	pf.Float64Var(&speed, "speed", config.DefaultAnimationSpeed, "animation speed")
	pf.BoolVar(&wireframe, "wireframe", false, "draw wireframes")
	pf.BoolVar(&orbit, "orbit", true, "orbit objects and let the camera follow the pointer")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	pf.StringVar(&rotationMode, "rotation-mode", config.DefaultRotationMode, "per_tick or per_second")
	pf.BoolVar(&strict, "strict", false, "reject out-of-range object counts instead of clamping")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "render in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "render in a native window",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "render headless for a number of frames",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to render")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames with the wall clock")
	runCmd.Flags().BoolVar(&dump, "dump", false, "print the last frame")
	runCmd.Flags().BoolVar(&save, "save", true, "persist frame stats")
	runCmd.Flags().IntVar(&cols, "cols", 80, "canvas columns")
	runCmd.Flags().IntVar(&rows, "rows", 24, "canvas rows")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the last frame as svg")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "render an ensemble of headless scenes in parallel",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&members, "members", 4, "ensemble size")
	benchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "max members in flight (0 = unlimited)")
	benchCmd.Flags().IntVar(&frames, "frames", 600, "frames per member")
	benchCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames with the wall clock")
	benchCmd.Flags().BoolVar(&save, "save", true, "persist member stats")
	benchCmd.Flags().IntVar(&cols, "cols", 80, "canvas columns")
	benchCmd.Flags().IntVar(&rows, "rows", 24, "canvas rows")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "render a scripted scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&save, "save", true, "persist frame stats")
	scriptCmd.Flags().IntVar(&cols, "cols", 80, "canvas columns")
	scriptCmd.Flags().IntVar(&rows, "rows", 24, "canvas rows")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	reportCmd := &cobra.Command{
		Use:   "report [run_id]",
		Short: "plot the fps of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  reportRun,
	}
	reportCmd.Flags().StringVar(&exportPath, "export", "", "write the run as json to a path (- for stdout)")
	reportCmd.Flags().StringVar(&svgPath, "svg", "", "write the fps series as svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tOBJECTS\tROTATION\tSPEED\tWIRE\tORBIT\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%v\t%v\t%s\n", name,
					p.Scene.ObjectCount, p.Scene.RotationSpeed, p.Scene.AnimationSpeed,
					p.Scene.Wireframe, p.Scene.AutoRotate, p.Theme)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "orbitscene.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, benchCmd, scriptCmd, runsCmd, reportCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset < config file < explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("objects") {
		cfg.Scene.ObjectCount = objects
	}
	if flags.Changed("rotation") {
		cfg.Scene.RotationSpeed = rotation
	}
	if flags.Changed("speed") {
		cfg.Scene.AnimationSpeed = speed
	}
	if flags.Changed("wireframe") {
		cfg.Scene.Wireframe = wireframe
	}
	if flags.Changed("orbit") {
		cfg.Scene.AutoRotate = orbit
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("rotation-mode") {
		cfg.RotationMode = rotationMode
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newRuntime(cfg *config.Config, r scene.Renderer, logger *slog.Logger, opts ...scene.Option) *scene.Runtime {
	opts = append([]scene.Option{
		scene.WithSeed(cfg.Seed),
		scene.WithStrict(cfg.Strict),
		scene.WithRotationMode(cfg.Mode()),
		scene.WithLogger(logger),
	}, opts...)
	return scene.NewRuntime(r, cfg.SceneConfig(), opts...)
}

// checkConfig rejects an invalid config in strict mode and otherwise warns
// that the runtime will clamp it.
func checkConfig(cfg *config.Config, logger *slog.Logger) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}
	if cfg.Strict {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger.Warn("config out of range, clamping", "err", err)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, f, err := logx.OpenFile(logFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := checkConfig(cfg, logger); err != nil {
		return err
	}

	r := viz.NewCanvasRenderer(viz.GetTheme(cfg.Theme))
	w, h := tui.DefaultViewport()
	rt := newRuntime(cfg, r, logger, scene.WithViewport(w, h))

	logger.Info("starting terminal view", "objects", cfg.Scene.ObjectCount, "theme", cfg.Theme, "fps", cfg.FPS)
	return tui.Run(rt, r, tui.Options{FPS: cfg.FPS, Theme: cfg.Theme, Logger: logger})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	if err := checkConfig(cfg, logger); err != nil {
		return err
	}

	r := gui.NewRenderer("orbitscene", cfg.FPS)
	rt := newRuntime(cfg, r, logger, scene.WithViewport(scene.DefaultWidth, scene.DefaultHeight))
	return gui.NewApp(rt, logger).Run()
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	if err := checkConfig(cfg, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	r := viz.NewCanvasRenderer(viz.GetTheme(cfg.Theme))
	runner := loop.New(loop.Config{FPS: cfg.FPS, Frames: frames, Realtime: realtime})
	for _, m := range metrics.Defaults(cfg.FPS) {
		runner.AddMetric(m)
	}
	opts := []scene.Option{scene.WithViewport(cols*2, rows*4)}
	if !realtime {
		clock := loop.NewVirtualClock(time.Now())
		runner.WithVirtualClock(clock)
		opts = append(opts, scene.WithClock(clock.Now))
	}
	rt := newRuntime(cfg, r, logger, opts...)

	if err := rt.Start(); err != nil {
		return err
	}
	defer rt.Stop()

	fmt.Printf("rendering %d frames...\n", frames)
	res, err := runner.Run(ctx, rt)
	if err != nil {
		return err
	}

	if dump {
		fmt.Println(r.Plain())
	}
	if svgPath != "" {
		if err := export.WriteFile(svgPath, export.CanvasToSVG(r.Snapshot(), 4)); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}

	fmt.Printf("completed in %v\n", res.Wall.Round(time.Millisecond))
	fmt.Printf("frames: %d (%d aborted)\n", res.Frames, res.Failures)
	fmt.Printf("fps: %d  objects: %d  triangles: %d\n", res.Final.FPS, res.Final.Objects, res.Final.Triangles)

	if !save {
		return nil
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runMetadata("run", cfg, cfg.Seed, res), res.Stats)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runMetadata(name string, cfg *config.Config, seed int64, res *loop.Result) store.RunMetadata {
	summary := store.Summarize(res.Stats)
	for k, v := range res.Metrics {
		summary[k] = v
	}
	return store.RunMetadata{
		Name:         name,
		Seed:         seed,
		FPS:          cfg.FPS,
		Frames:       res.Frames,
		Failures:     res.Failures,
		RotationMode: cfg.Mode().String(),
		Scene:        cfg.SceneConfig(),
		Summary:      summary,
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	if err := checkConfig(cfg, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = 1
	}
	ens := bench.NewEnsemble(bench.Config{
		Members:     members,
		SeedStart:   seedStart,
		Concurrency: concurrency,
		Scene:       cfg.SceneConfig(),
		Mode:        cfg.Mode(),
		Loop:        loop.Config{FPS: cfg.FPS, Frames: frames, Realtime: realtime},
		Width:       cols * 2,
		Height:      rows * 4,
	}, bench.CanvasFactory(viz.GetTheme(cfg.Theme)), logger)

	fmt.Printf("benchmarking %d scenes x %d frames\n\n", members, frames)
	start := time.Now()
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var st *store.Store
	if save {
		st = store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tSEED\tFRAMES\tFPS\tOBJECTS\tTRIANGLES\tTIME\tFRAMES/SEC\tRUN")
	for _, m := range results {
		runID := "-"
		if st != nil {
			id, err := st.Save(runMetadata("bench", cfg, m.Seed, m.Result), m.Result.Stats)
			if err != nil {
				return fmt.Errorf("save member %d: %w", m.Index, err)
			}
			runID = id
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%v\t%.0f\t%s\n",
			m.Index, m.Seed, m.Result.Frames, m.Result.Final.FPS, m.Result.Final.Objects,
			m.Result.Final.Triangles, m.Result.Wall.Round(time.Millisecond),
			float64(m.Result.Frames)/m.Result.Wall.Seconds(), runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	agg := bench.Summarize(results)
	fmt.Printf("\ntotal: %d frames in %v (%.0f frames/sec), mean fps %.1f, %d aborted\n",
		agg.Frames, elapsed.Round(time.Millisecond), float64(agg.Frames)/elapsed.Seconds(), agg.MeanFPS, agg.Failures)
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	if err := checkConfig(cfg, logger); err != nil {
		return err
	}

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	clock := loop.NewVirtualClock(time.Now())
	r := viz.NewCanvasRenderer(viz.GetTheme(cfg.Theme))
	rt := newRuntime(cfg, r, logger, scene.WithViewport(cols*2, rows*4), scene.WithClock(clock.Now))
	if err := rt.Start(); err != nil {
		return err
	}
	defer rt.Stop()

	newRunner := func(n int) *loop.Runner {
		runner := loop.New(loop.Config{FPS: cfg.FPS, Frames: n}).WithVirtualClock(clock)
		for _, m := range metrics.Defaults(cfg.FPS) {
			runner.AddMetric(m)
		}
		return runner
	}

	fmt.Printf("running scenario %s (%d steps)\n\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, rt, newRunner, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tFPS\tOBJECTS\tTRIANGLES\tWIRE\tORBIT")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%v\t%v\n",
			res.Name, res.Result.Frames, res.Result.Final.FPS, res.Result.Final.Objects,
			res.Result.Final.Triangles, res.Config.Wireframe, res.Config.AutoRotate)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !save {
		return nil
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	all := automation.Frames(results)
	ms := metrics.Defaults(cfg.FPS)
	for i, f := range all {
		for _, m := range ms {
			m.Observe(i, f)
		}
	}
	meta := runMetadata(scenario.Name, cfg, cfg.Seed, &loop.Result{Frames: len(all), Stats: all, Metrics: metrics.Collect(ms)})
	meta.Scene = rt.Config()
	runID, err := st.Save(meta, all)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFRAMES\tFPS\tOBJECTS\tTRIANGLES\tMODE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%d\t%.0f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Summary["fps_mean"],
			run.Scene.ObjectCount,
			run.Summary["triangles"],
			run.RotationMode,
		)
	}

	return w.Flush()
}

func reportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	if exportPath != "" {
		return st.Export(runID, exportPath)
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if svgPath != "" {
		svg := export.SeriesToSVG(store.FPSSeries(stats), 800, 240, string(viz.GetTheme(theme).Plot))
		if err := export.WriteFile(svgPath, svg); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return writeReport(os.Stdout, meta, stats)
}

func writeReport(w io.Writer, meta *store.RunMetadata, stats []scene.FrameStats) error {
	fmt.Fprintf(w, "run: %s\n", meta.ID)
	fmt.Fprintf(w, "seed: %d  fps target: %d  mode: %s\n", meta.Seed, meta.FPS, meta.RotationMode)
	fmt.Fprintf(w, "frames: %d (%d aborted)\n\n", meta.Frames, meta.Failures)

	if len(stats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	graph := asciigraph.Plot(store.FPSSeries(stats),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("fps per frame"),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)

	for _, k := range []string{"fps_min", "fps_mean", "fps_max", "stability", "objects", "triangles", "peak_triangles"} {
		if v, ok := meta.Summary[k]; ok {
			fmt.Fprintf(w, "  %s: %.2f\n", k, v)
		}
	}
	return nil
}
