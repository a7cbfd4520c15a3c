// Package bench runs an ensemble of independent headless scenes in
// parallel, one seed per member.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbitscene/internal/loop"
	"github.com/san-kum/orbitscene/internal/metrics"
	"github.com/san-kum/orbitscene/internal/scene"
	"github.com/san-kum/orbitscene/internal/viz"
)

// RendererFactory builds the renderer for one member.
type RendererFactory func(member int) scene.Renderer

// CanvasFactory renders members to off-screen braille canvases.
func CanvasFactory(theme viz.Theme) RendererFactory {
	return func(int) scene.Renderer { return viz.NewCanvasRenderer(theme) }
}

type Config struct {
	Members     int
	SeedStart   int64
	Concurrency int
	Scene       scene.Config
	Mode        scene.RotationMode
	Loop        loop.Config

	// Width and Height size each member's viewport.
	Width, Height int
}

type Member struct {
	Index  int
	Seed   int64
	Result *loop.Result
}

type Ensemble struct {
	cfg     Config
	factory RendererFactory
	logger  *slog.Logger
}

func NewEnsemble(cfg Config, factory RendererFactory, logger *slog.Logger) *Ensemble {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 320, 192
	}
	return &Ensemble{cfg: cfg, factory: factory, logger: logger}
}

// Run executes every member and returns results in member order. The
// first member error cancels the rest.
func (e *Ensemble) Run(ctx context.Context) ([]Member, error) {
	if e.cfg.Members <= 0 {
		return nil, fmt.Errorf("members must be positive, got %d", e.cfg.Members)
	}
	if err := e.cfg.Loop.Validate(); err != nil {
		return nil, err
	}

	results := make([]Member, e.cfg.Members)
	g, gctx := errgroup.WithContext(ctx)
	if e.cfg.Concurrency > 0 {
		g.SetLimit(e.cfg.Concurrency)
	}

	for i := 0; i < e.cfg.Members; i++ {
		idx := i
		g.Go(func() error {
			seed := e.cfg.SeedStart + int64(idx)
			res, err := e.runMember(gctx, idx, seed)
			if err != nil {
				return fmt.Errorf("member %d (seed %d): %w", idx, seed, err)
			}
			results[idx] = Member{Index: idx, Seed: seed, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Ensemble) runMember(ctx context.Context, idx int, seed int64) (*loop.Result, error) {
	opts := []scene.Option{
		scene.WithSeed(seed),
		scene.WithRotationMode(e.cfg.Mode),
		scene.WithViewport(e.cfg.Width, e.cfg.Height),
		scene.WithLogger(e.logger.With("member", idx)),
	}
	runner := loop.New(e.cfg.Loop)
	for _, m := range metrics.Defaults(e.cfg.Loop.FPS) {
		runner.AddMetric(m)
	}
	if !e.cfg.Loop.Realtime {
		clock := loop.NewVirtualClock(time.Unix(0, 0))
		opts = append(opts, scene.WithClock(clock.Now))
		runner.WithVirtualClock(clock)
	}

	rt := scene.NewRuntime(e.factory(idx), e.cfg.Scene, opts...)
	if err := rt.Start(); err != nil {
		return nil, err
	}
	defer rt.Stop()

	return runner.Run(ctx, rt)
}

// Aggregate is the ensemble-wide view of member results.
type Aggregate struct {
	Members   int
	Frames    int
	Failures  int
	MeanFPS   float64
	Triangles int
	Wall      time.Duration
}

func Summarize(members []Member) Aggregate {
	var a Aggregate
	a.Members = len(members)
	fpsSum, fpsN := 0.0, 0
	for _, m := range members {
		if m.Result == nil {
			continue
		}
		a.Frames += m.Result.Frames
		a.Failures += m.Result.Failures
		a.Triangles += m.Result.Final.Triangles
		if m.Result.Final.FPS > 0 {
			fpsSum += float64(m.Result.Final.FPS)
			fpsN++
		}
		if m.Result.Wall > a.Wall {
			a.Wall = m.Result.Wall
		}
	}
	if fpsN > 0 {
		a.MeanFPS = fpsSum / float64(fpsN)
	}
	return a
}
