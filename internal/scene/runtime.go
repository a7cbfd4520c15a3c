package scene

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

type options struct {
	seed     int64
	now      func() time.Time
	logger   *slog.Logger
	strict   bool
	mode     RotationMode
	viewport Viewport
}

// Option configures a Runtime.
type Option func(*options)

// WithSeed fixes the entity RNG. Zero seeds from the wall clock.
func WithSeed(seed int64) Option { return func(o *options) { o.seed = seed } }

// WithClock replaces time.Now as the frame time source.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithStrict makes out-of-range object counts a frame error wrapping
// ErrObjectCount instead of clamping them. The previous entities stay live.
func WithStrict(strict bool) Option { return func(o *options) { o.strict = strict } }

func WithRotationMode(m RotationMode) Option { return func(o *options) { o.mode = m } }

// WithViewport sets the initial render target size.
func WithViewport(w, h int) Option {
	return func(o *options) { o.viewport = Viewport{Width: w, Height: h} }
}

// Runtime owns all mutable scene state for one scene: entities, camera,
// stats and the latest configuration and pointer input. Hosts drive it by
// calling Tick from whatever scheduler they have.
type Runtime struct {
	mu       sync.Mutex
	opts     options
	renderer Renderer
	config   *ConfigStore
	pointer  PointerCell
	logger   *slog.Logger

	rng      *rand.Rand
	registry *Registry
	clock    *Clock
	camera   *CameraController
	viewport Viewport
	stats    *StatsSampler

	running bool
	built   bool
	applied Config
	frame   uint64
}

func NewRuntime(r Renderer, cfg Config, opts ...Option) *Runtime {
	o := options{
		now:      time.Now,
		viewport: Viewport{Width: DefaultWidth, Height: DefaultHeight},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(o.seed))
	return &Runtime{
		opts:     o,
		renderer: r,
		config:   NewConfigStore(cfg, o.strict),
		logger:   o.logger,
		rng:      rng,
		registry: NewRegistry(rng, o.strict, o.logger),
		clock:    NewClock(o.now),
		camera:   NewCameraController(o.viewport.Aspect()),
		viewport: o.viewport,
	}
}

// Start initializes the renderer. Calling Start on a running runtime is a
// no-op. A renderer that fails to initialize leaves the runtime stopped and
// the error wraps ErrNotReady.
func (rt *Runtime) Start() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.running {
		return nil
	}
	if rt.renderer == nil {
		return fmt.Errorf("%w: no renderer", ErrNotReady)
	}
	if err := rt.renderer.Init(rt.viewport.Width, rt.viewport.Height); err != nil {
		rt.logger.Error("renderer init failed", "err", err)
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	rt.clock.Reset()
	rt.camera = NewCameraController(rt.viewport.Aspect())
	rt.stats = nil
	rt.built = false
	rt.frame = 0
	rt.running = true
	rt.logger.Info("scene started", "width", rt.viewport.Width, "height", rt.viewport.Height, "seed", rt.opts.seed)
	return nil
}

// Stop detaches the scene and releases entity, camera and renderer state.
// It waits for an in-flight frame and is safe to call more than once.
func (rt *Runtime) Stop() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.running {
		return nil
	}
	rt.running = false
	rt.registry.Clear()
	rt.built = false
	rt.pointer.Clear()
	rt.camera = NewCameraController(rt.viewport.Aspect())
	rt.logger.Info("scene stopped", "frames", rt.frame)
	if err := rt.renderer.Close(); err != nil {
		return fmt.Errorf("close renderer: %w", err)
	}
	return nil
}

func (rt *Runtime) Running() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.running
}

// Tick runs exactly one update and render pass. A failed render aborts the
// frame: the error is returned as a *FrameError and stats are not recorded.
func (rt *Runtime) Tick() (FrameStats, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.running {
		return FrameStats{}, ErrNotReady
	}

	cfg := rt.config.Load()
	if err := rt.applyConfig(cfg); err != nil {
		return rt.lastStats(), &FrameError{Frame: rt.frame + 1, Elapsed: rt.clock.Elapsed(), Wrapped: err}
	}

	dt, t := rt.clock.Tick()
	AnimateAll(rt.registry.Entities(), t, dt, cfg, rt.opts.mode)

	target := Vec2{}
	if raw, ok := rt.pointer.Get(); ok {
		target = NormalizePointer(raw.X, raw.Y, float64(rt.viewport.Width), float64(rt.viewport.Height))
	}
	rt.camera.Update(target, cfg.AutoRotate)

	rt.frame++
	frame := Frame{
		Number:   rt.frame,
		Elapsed:  t,
		Entities: rt.registry.Entities(),
		Camera:   rt.camera.State(),
		Viewport: rt.viewport,
		Config:   cfg,
		Stats:    rt.lastStats(),
	}
	if err := rt.draw(frame); err != nil {
		rt.logger.Warn("frame aborted", "frame", rt.frame, "err", err)
		return rt.lastStats(), &FrameError{Frame: rt.frame, Elapsed: t, Wrapped: err}
	}

	now := rt.clock.LastMs()
	if rt.stats == nil {
		rt.stats = NewStatsSampler(now)
	}
	return rt.stats.RecordFrame(now, rt.registry.TriangleCount(), rt.registry.Len()), nil
}

// applyConfig rebuilds the registry when the count changes and flips
// wireframe in place otherwise.
func (rt *Runtime) applyConfig(cfg Config) error {
	switch {
	case !rt.built || cfg.ObjectCount != rt.applied.ObjectCount:
		if err := rt.registry.Rebuild(cfg.ObjectCount, cfg.Wireframe); err != nil {
			return err
		}
		rt.built = true
	case cfg.Wireframe != rt.applied.Wireframe:
		rt.registry.SetWireframe(cfg.Wireframe)
	}
	rt.applied = cfg
	return nil
}

func (rt *Runtime) draw(f Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	return rt.renderer.Draw(f)
}

func (rt *Runtime) lastStats() FrameStats {
	if rt.stats == nil {
		return FrameStats{}
	}
	return rt.stats.Last()
}

// OnConfigChange publishes a new configuration, clamped into range (the
// object count is left alone in strict mode). It takes effect at the start
// of the next frame.
func (rt *Runtime) OnConfigChange(cfg Config) { rt.config.Store(cfg) }

// UpdateConfig applies fn to the current configuration atomically.
func (rt *Runtime) UpdateConfig(fn func(Config) Config) Config { return rt.config.Update(fn) }

func (rt *Runtime) Config() Config { return rt.config.Load() }

// OnPointerMove buffers the latest pointer position in viewport pixels.
func (rt *Runtime) OnPointerMove(x, y float64) { rt.pointer.Set(x, y) }

// OnResize records a new viewport size, updates the camera aspect and
// informs the renderer. It never touches entity state.
func (rt *Runtime) OnResize(w, h int) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	changed, err := rt.viewport.Resize(w, h, rt.camera)
	if err != nil {
		rt.logger.Warn("resize ignored", "width", w, "height", h)
		return fmt.Errorf("resize %dx%d: %w", w, h, err)
	}
	if changed && rt.running {
		rt.renderer.Resize(w, h)
	}
	return nil
}

func (rt *Runtime) ResetCamera() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.camera.Reset()
}

func (rt *Runtime) Camera() CameraState {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.camera.State()
}

func (rt *Runtime) Viewport() Viewport {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.viewport
}

func (rt *Runtime) Stats() FrameStats {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.lastStats()
}

// FPSHistory returns the FPS value of every closed sampling window.
func (rt *Runtime) FPSHistory() []float64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.stats == nil {
		return nil
	}
	return rt.stats.History()
}

// Entities returns a copy of the live entity set.
func (rt *Runtime) Entities() []Entity {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	live := rt.registry.Entities()
	out := make([]Entity, len(live))
	for i, e := range live {
		out[i] = *e
	}
	return out
}
