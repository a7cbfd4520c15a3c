package scene

// Material is the per-entity render state. Each entity owns a clone of the
// registry's base material.
type Material struct {
	Color     HSL
	Wireframe bool
}

// Entity is one animated shape. Kind, Index, RotationVelocity and
// BasePosition are fixed at creation; Position, Rotation and Material.Color
// are rewritten every frame.
type Entity struct {
	Kind             ShapeKind
	Geometry         Geometry
	Index            int
	RotationVelocity Vec3
	BasePosition     Vec3
	Position         Vec3
	Rotation         Vec3
	Material         Material
}

func (e *Entity) Triangles() int { return e.Geometry.Triangles() }
