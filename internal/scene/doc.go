// Package scene provides the per-frame animation core for an orbiting
// shape scene.
//
// The package turns elapsed time and a live configuration into entity
// transforms, colors and a camera position, and samples frame statistics:
//
//   - [Clock]: monotonic time source with clamped per-tick delta
//   - [Registry]: owns the fixed set of animated entities
//   - [Animate]: rotation, vertical float, orbit and hue for one entity
//   - [CameraController]: smooths the camera toward a pointer target
//   - [StatsSampler]: stepped once-per-second FPS estimate
//   - [Runtime]: aggregate that wires the above to a [Renderer]
//
// # Example
//
//	rt := scene.NewRuntime(renderer, scene.DefaultConfig(), scene.WithSeed(42))
//	if err := rt.Start(); err != nil {
//		return err
//	}
//	defer rt.Stop()
//	stats, err := rt.Tick()
//
// # Thread Safety
//
// Runtime serializes Tick, Stop, OnResize and ResetCamera internally.
// OnPointerMove and OnConfigChange never block on an in-flight frame; the
// frame reads both exactly once at its start. Registry, CameraController
// and StatsSampler on their own are NOT thread-safe.
package scene
