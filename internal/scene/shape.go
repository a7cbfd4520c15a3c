package scene

// ShapeKind is the fixed geometry variant of an entity.
type ShapeKind int

const (
	Cube ShapeKind = iota
	Sphere
	Torus
	Cone
	numShapeKinds
)

var shapeNames = [numShapeKinds]string{"cube", "sphere", "torus", "cone"}

func (k ShapeKind) String() string {
	if k < 0 || k >= numShapeKinds {
		return "unknown"
	}
	return shapeNames[k]
}

// Geometry describes the mesh a renderer should build for a shape kind.
// Radius and Height are in world units; Tube only applies to Torus.
type Geometry struct {
	Kind            ShapeKind
	Size            float64 // cube edge length
	Radius          float64
	Tube            float64
	Height          float64
	RadialSegments  int
	TubularSegments int
	Vertices        int
}

// Triangles is the readout triangle count for the geometry: the vertex
// count divided by three, as the stats surface reports it.
func (g Geometry) Triangles() int { return g.Vertices / 3 }

// geometries is the kind → descriptor table, resolved once per entity.
var geometries = [numShapeKinds]Geometry{
	Cube:   {Kind: Cube, Size: 1, Vertices: 24},
	Sphere: {Kind: Sphere, Radius: 0.7, RadialSegments: 32, TubularSegments: 16, Vertices: 33 * 17},
	Torus:  {Kind: Torus, Radius: 0.5, Tube: 0.2, RadialSegments: 16, TubularSegments: 100, Vertices: 17 * 101},
	Cone:   {Kind: Cone, Radius: 0.6, Height: 1.2, RadialSegments: 32, Vertices: 33*2 + 32 + 33},
}

// GeometryFor returns the descriptor for kind. Unknown kinds map to Cube.
func GeometryFor(k ShapeKind) Geometry {
	if k < 0 || k >= numShapeKinds {
		return geometries[Cube]
	}
	return geometries[k]
}

// ShapeKinds lists every kind in declaration order.
func ShapeKinds() []ShapeKind {
	return []ShapeKind{Cube, Sphere, Torus, Cone}
}
