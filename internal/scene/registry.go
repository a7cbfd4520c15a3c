package scene

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

const (
	OrbitRadius      = 8.0
	MaxAngularVel    = 0.025
	BaseHeightSpread = 1.0
)

// Registry owns the live entity set. Every rebuild regenerates the full set;
// indices are always exactly 0..n-1.
type Registry struct {
	rng      *rand.Rand
	base     Material
	strict   bool
	logger   *slog.Logger
	entities []*Entity
}

// NewRegistry returns an empty registry drawing from rng. In strict mode an
// out-of-range count is rejected; otherwise it is clamped.
func NewRegistry(rng *rand.Rand, strict bool, logger *slog.Logger) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		rng:    rng,
		base:   Material{Color: HSL{0, EntitySaturation, EntityLightness}},
		strict: strict,
		logger: logger,
	}
}

// Rebuild discards every entity and creates count new ones on the orbit
// circle.
func (r *Registry) Rebuild(count int, wireframe bool) error {
	if count < MinObjects || count > MaxObjects {
		if r.strict {
			return fmt.Errorf("%w: %d", ErrObjectCount, count)
		}
		clamped := ClampCount(count)
		r.logger.Warn("object count clamped", "requested", count, "used", clamped)
		count = clamped
	}

	entities := make([]*Entity, count)
	for i := range entities {
		kind := ShapeKind(r.rng.Intn(int(numShapeKinds)))
		angle := float64(i) / float64(count) * 2 * math.Pi
		base := Vec3{
			X: math.Cos(angle) * OrbitRadius,
			Y: (r.rng.Float64()*2 - 1) * BaseHeightSpread,
			Z: math.Sin(angle) * OrbitRadius,
		}
		mat := r.base
		mat.Wireframe = wireframe
		entities[i] = &Entity{
			Kind:     kind,
			Geometry: GeometryFor(kind),
			Index:    i,
			RotationVelocity: Vec3{
				X: r.randVelocity(),
				Y: r.randVelocity(),
				Z: r.randVelocity(),
			},
			BasePosition: base,
			Position:     base,
			Material:     mat,
		}
	}
	r.entities = entities
	r.logger.Debug("registry rebuilt", "count", count, "wireframe", wireframe)
	return nil
}

func (r *Registry) randVelocity() float64 {
	return (r.rng.Float64()*2 - 1) * MaxAngularVel
}

// SetWireframe flips the wireframe flag on every live material in place.
func (r *Registry) SetWireframe(flag bool) {
	for _, e := range r.entities {
		e.Material.Wireframe = flag
	}
}

// Entities returns the live set. Callers must not retain it across a
// rebuild.
func (r *Registry) Entities() []*Entity { return r.entities }

func (r *Registry) Len() int { return len(r.entities) }

// TriangleCount sums the readout triangle count of every live entity.
func (r *Registry) TriangleCount() int {
	total := 0
	for _, e := range r.entities {
		total += e.Triangles()
	}
	return total
}

// Clear releases every entity.
func (r *Registry) Clear() { r.entities = nil }
