// Package loop drives a scene at a fixed frame rate for hosts that have no
// render loop of their own.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/orbitscene/internal/metrics"
	"github.com/san-kum/orbitscene/internal/scene"
)

// Ticker is the part of scene.Runtime the loop needs.
type Ticker interface {
	Tick() (scene.FrameStats, error)
}

// Observer is called after every frame that rendered.
type Observer func(frame int, stats scene.FrameStats)

type Config struct {
	FPS    int
	Frames int

	// Realtime paces frames with a wall-clock ticker. Otherwise frames run
	// back to back and a VirtualClock, if given, is advanced by 1/FPS per
	// frame.
	Realtime bool

	// MaxFailures stops the loop after that many aborted frames. Zero
	// means never.
	MaxFailures int
}

func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	return nil
}

func (c Config) interval() time.Duration { return time.Second / time.Duration(c.FPS) }

type Result struct {
	Frames   int                `json:"frames"`
	Failures int                `json:"failures"`
	Stats    []scene.FrameStats `json:"-"`
	Final    scene.FrameStats   `json:"final"`
	Metrics  map[string]float64 `json:"metrics"`
	Wall     time.Duration      `json:"wall_ns"`
}

// Runner runs a Ticker for a bounded number of frames.
type Runner struct {
	cfg       Config
	clock     *VirtualClock
	metrics   []metrics.Metric
	observers []Observer
}

func New(cfg Config) *Runner {
	return &Runner{cfg: cfg, metrics: make([]metrics.Metric, 0), observers: make([]Observer, 0)}
}

// WithVirtualClock makes the runner advance c once per frame. The same
// clock must be handed to the runtime via scene.WithClock(c.Now).
func (r *Runner) WithVirtualClock(c *VirtualClock) *Runner {
	r.clock = c
	return r
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run ticks t until cfg.Frames frames have been attempted or ctx is done.
// Aborted frames are counted, not fatal, unless the runtime is not ready.
func (r *Runner) Run(ctx context.Context, t Ticker) (*Result, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Stats: make([]scene.FrameStats, 0, r.cfg.Frames)}
	for _, m := range r.metrics {
		m.Reset()
	}
	start := time.Now()
	defer func() {
		res.Wall = time.Since(start)
		res.Metrics = metrics.Collect(r.metrics)
	}()

	var tick <-chan time.Time
	if r.cfg.Realtime {
		tk := time.NewTicker(r.cfg.interval())
		defer tk.Stop()
		tick = tk.C
	}

	for i := 0; i < r.cfg.Frames; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}
		}

		if r.clock != nil {
			r.clock.Advance(r.cfg.interval())
		}

		stats, err := t.Tick()
		if err != nil {
			if errors.Is(err, scene.ErrNotReady) {
				return res, err
			}
			res.Failures++
			if r.cfg.MaxFailures > 0 && res.Failures >= r.cfg.MaxFailures {
				return res, fmt.Errorf("too many aborted frames: %w", err)
			}
			continue
		}

		res.Frames++
		res.Final = stats
		res.Stats = append(res.Stats, stats)
		for _, m := range r.metrics {
			m.Observe(i, stats)
		}
		for _, o := range r.observers {
			o(i, stats)
		}
	}
	return res, nil
}

// VirtualClock is a manually advanced time source.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
