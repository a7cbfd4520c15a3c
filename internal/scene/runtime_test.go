package scene_test

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitscene/internal/scene"
)

type fakeRenderer struct {
	initErr  error
	drawErr  error
	panicMsg string
	inits    int
	closes   int
	draws    int
	resizes  [][2]int
	last     scene.Frame
}

func (f *fakeRenderer) Init(w, h int) error { f.inits++; return f.initErr }
func (f *fakeRenderer) Resize(w, h int)     { f.resizes = append(f.resizes, [2]int{w, h}) }
func (f *fakeRenderer) Close() error        { f.closes++; return nil }
func (f *fakeRenderer) Draw(fr scene.Frame) error {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.drawErr != nil {
		return f.drawErr
	}
	f.draws++
	f.last = fr
	return nil
}

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time { return c.t }
func (c *stepClock) step(d time.Duration) {
	c.t = c.t.Add(d)
}

var _ = Describe("Runtime", func() {
	var (
		rend  *fakeRenderer
		clock *stepClock
		rt    *scene.Runtime
		cfg   scene.Config
	)

	BeforeEach(func() {
		rend = &fakeRenderer{}
		clock = &stepClock{t: time.Unix(1_700_000_000, 0)}
		cfg = scene.DefaultConfig()
		rt = scene.NewRuntime(rend, cfg,
			scene.WithSeed(99),
			scene.WithClock(clock.now),
			scene.WithViewport(800, 600),
			scene.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		)
	})

	Describe("lifecycle", func() {
		It("refuses to tick before Start", func() {
			_, err := rt.Tick()
			Expect(err).To(MatchError(scene.ErrNotReady))
		})

		It("treats a second Start as a no-op", func() {
			Expect(rt.Start()).To(Succeed())
			Expect(rt.Start()).To(Succeed())
			Expect(rend.inits).To(Equal(1))
		})

		It("reports not ready when the renderer fails to initialize", func() {
			rend.initErr = errors.New("no gl context")
			err := rt.Start()
			Expect(err).To(MatchError(scene.ErrNotReady))
			Expect(err.Error()).To(ContainSubstring("no gl context"))
			Expect(rt.Running()).To(BeFalse())

			_, err = rt.Tick()
			Expect(err).To(MatchError(scene.ErrNotReady))
			Expect(rend.draws).To(BeZero())
		})

		It("stops idempotently and releases entities", func() {
			Expect(rt.Start()).To(Succeed())
			_, err := rt.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(rt.Entities()).To(HaveLen(cfg.ObjectCount))

			Expect(rt.Stop()).To(Succeed())
			Expect(rt.Stop()).To(Succeed())
			Expect(rend.closes).To(Equal(1))
			Expect(rt.Entities()).To(BeEmpty())

			_, err = rt.Tick()
			Expect(err).To(MatchError(scene.ErrNotReady))
		})

		It("can be started again after Stop", func() {
			Expect(rt.Start()).To(Succeed())
			Expect(rt.Stop()).To(Succeed())
			Expect(rt.Start()).To(Succeed())
			_, err := rt.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(rend.inits).To(Equal(2))
		})
	})

	Describe("frames", func() {
		BeforeEach(func() {
			Expect(rt.Start()).To(Succeed())
		})

		It("places eight entities on the circle at t=0", func() {
			rt.OnConfigChange(scene.Config{ObjectCount: 8, RotationSpeed: 1, AnimationSpeed: 1, AutoRotate: true})
			_, err := rt.Tick()
			Expect(err).NotTo(HaveOccurred())

			ents := rt.Entities()
			Expect(ents).To(HaveLen(8))
			for _, e := range ents {
				Expect(e.Position.Y).To(BeNumerically("~", e.BasePosition.Y+math.Sin(float64(e.Index))*0.5, 1e-12))
				angle := float64(e.Index) * math.Pi / 4
				Expect(e.Position.X).To(BeNumerically("~", math.Cos(angle)*8, 1e-9))
				Expect(e.Position.Z).To(BeNumerically("~", math.Sin(angle)*8, 1e-9))
			}
		})

		It("rebuilds when the object count changes", func() {
			rt.Tick()
			rt.OnConfigChange(scene.Config{ObjectCount: 3, RotationSpeed: 1, AnimationSpeed: 1})
			clock.step(16 * time.Millisecond)
			stats, err := rt.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Objects).To(Equal(3))

			idx := map[int]bool{}
			for _, e := range rt.Entities() {
				idx[e.Index] = true
			}
			Expect(idx).To(Equal(map[int]bool{0: true, 1: true, 2: true}))
		})

		It("toggles wireframe in place", func() {
			for i := 0; i < 5; i++ {
				clock.step(16 * time.Millisecond)
				rt.Tick()
			}
			before := rt.Entities()

			rt.UpdateConfig(func(c scene.Config) scene.Config {
				c.Wireframe = true
				c.RotationSpeed = 0
				return c
			})
			clock.step(16 * time.Millisecond)
			_, err := rt.Tick()
			Expect(err).NotTo(HaveOccurred())

			after := rt.Entities()
			Expect(after).To(HaveLen(len(before)))
			for i := range after {
				Expect(after[i].Material.Wireframe).To(BeTrue())
				Expect(after[i].Index).To(Equal(before[i].Index))
				Expect(after[i].Kind).To(Equal(before[i].Kind))
				Expect(after[i].RotationVelocity).To(Equal(before[i].RotationVelocity))
				Expect(after[i].Rotation).To(Equal(before[i].Rotation))
			}
		})

		It("freezes entities and camera when orbit is off", func() {
			rt.OnPointerMove(800, 0)
			for i := 0; i < 10; i++ {
				clock.step(16 * time.Millisecond)
				rt.Tick()
			}
			rt.UpdateConfig(func(c scene.Config) scene.Config {
				c.AutoRotate = false
				return c
			})
			clock.step(16 * time.Millisecond)
			rt.Tick()
			frozen := rt.Entities()
			cam := rt.Camera().Position

			for i := 0; i < 30; i++ {
				clock.step(50 * time.Millisecond)
				_, err := rt.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			for i, e := range rt.Entities() {
				Expect(e.Position.X).To(Equal(frozen[i].Position.X))
				Expect(e.Position.Z).To(Equal(frozen[i].Position.Z))
			}
			Expect(rt.Camera().Position).To(Equal(cam))
		})

		It("steers the camera toward the pointer", func() {
			rt.OnPointerMove(800, 0) // top right corner → (1, 1)
			start := rt.Camera().Position
			clock.step(16 * time.Millisecond)
			rt.Tick()
			p := rt.Camera().Position
			Expect(p.X).To(BeNumerically("~", start.X+(5-start.X)*0.02, 1e-12))
			Expect(p.Y).To(BeNumerically("~", start.Y+(5-start.Y)*0.02, 1e-12))
		})

		It("resets the camera even with orbit off", func() {
			rt.OnPointerMove(0, 0)
			for i := 0; i < 20; i++ {
				rt.Tick()
			}
			rt.UpdateConfig(func(c scene.Config) scene.Config {
				c.AutoRotate = false
				return c
			})
			rt.ResetCamera()
			Expect(rt.Camera().Position).To(Equal(scene.HomePosition))
		})

		It("publishes a stepped fps and live triangle count", func() {
			var stats scene.FrameStats
			for i := 0; i < 70; i++ {
				clock.step(16 * time.Millisecond)
				s, err := rt.Tick()
				Expect(err).NotTo(HaveOccurred())
				stats = s
			}
			Expect(stats.FPS).To(BeNumerically("~", 62, 2))
			Expect(stats.Objects).To(Equal(cfg.ObjectCount))

			total := 0
			for _, e := range rt.Entities() {
				total += e.Triangles()
			}
			Expect(stats.Triangles).To(Equal(total))
			Expect(rt.FPSHistory()).To(HaveLen(1))
		})

		It("aborts a frame on renderer failure without losing state", func() {
			clock.step(16 * time.Millisecond)
			good, err := rt.Tick()
			Expect(err).NotTo(HaveOccurred())
			count := len(rt.Entities())

			rend.drawErr = errors.New("device lost")
			clock.step(16 * time.Millisecond)
			stats, err := rt.Tick()
			var fe *scene.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(uint64(2)))
			Expect(stats).To(Equal(good))
			Expect(rt.Entities()).To(HaveLen(count))

			rend.drawErr = nil
			rend.panicMsg = "boom"
			_, err = rt.Tick()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("boom"))

			rend.panicMsg = ""
			clock.step(16 * time.Millisecond)
			_, err = rt.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(rt.Entities()).To(HaveLen(count))
		})

		It("clamps out-of-range configuration", func() {
			rt.OnConfigChange(scene.Config{ObjectCount: 400, RotationSpeed: -3, AnimationSpeed: 50})
			stats, err := rt.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Objects).To(Equal(scene.MaxObjects))
			Expect(rt.Config().AnimationSpeed).To(Equal(scene.MaxAnimationSpeed))
			Expect(rt.Config().RotationSpeed).To(BeZero())
		})

		It("rejects an out-of-range count in strict mode", func() {
			strictRt := scene.NewRuntime(rend, cfg,
				scene.WithSeed(99),
				scene.WithClock(clock.now),
				scene.WithStrict(true),
				scene.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			)
			Expect(strictRt.Start()).To(Succeed())
			_, err := strictRt.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(strictRt.Entities()).To(HaveLen(cfg.ObjectCount))

			strictRt.OnConfigChange(scene.Config{ObjectCount: 400, RotationSpeed: 1, AnimationSpeed: 1})
			Expect(strictRt.Config().ObjectCount).To(Equal(400))
			clock.step(16 * time.Millisecond)
			_, err = strictRt.Tick()
			var fe *scene.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(errors.Is(err, scene.ErrObjectCount)).To(BeTrue())
			Expect(strictRt.Entities()).To(HaveLen(cfg.ObjectCount))

			strictRt.OnConfigChange(scene.Config{ObjectCount: 12, RotationSpeed: 1, AnimationSpeed: 1})
			stats, err := strictRt.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Objects).To(Equal(12))
		})
	})

	Describe("resize", func() {
		It("updates the aspect and informs a running renderer", func() {
			Expect(rt.Start()).To(Succeed())
			Expect(rt.OnResize(1000, 500)).To(Succeed())
			Expect(rt.Camera().Aspect).To(Equal(2.0))
			Expect(rend.resizes).To(Equal([][2]int{{1000, 500}}))
			Expect(rt.Viewport()).To(Equal(scene.Viewport{Width: 1000, Height: 500}))
		})

		It("rejects a degenerate size", func() {
			Expect(rt.OnResize(0, 500)).To(MatchError(scene.ErrInvalidViewport))
			Expect(rt.Viewport()).To(Equal(scene.Viewport{Width: 800, Height: 600}))
		})

		It("leaves entity state alone", func() {
			Expect(rt.Start()).To(Succeed())
			rt.Tick()
			before := rt.Entities()
			Expect(rt.OnResize(640, 480)).To(Succeed())
			Expect(rt.Entities()).To(Equal(before))
		})
	})
})
