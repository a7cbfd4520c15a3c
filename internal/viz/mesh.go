package viz

import (
	"math"

	"github.com/san-kum/orbitscene/internal/scene"
)

type Edge struct {
	Start, End scene.Vec3
}

// Wireframe is a line mesh in local coordinates.
type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e scene.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

// addLoop connects pts in order and closes the loop.
func (w *Wireframe) addLoop(pts []scene.Vec3) {
	for i := range pts {
		w.AddEdge(pts[i], pts[(i+1)%len(pts)])
	}
}

// detail controls how many rings a mesh gets; solid materials are drawn
// denser than wireframe ones so the two modes read differently.
type detail struct {
	segments, rings int
}

var (
	wireDetail  = detail{segments: 12, rings: 3}
	solidDetail = detail{segments: 16, rings: 7}
)

// MeshCache builds each (kind, mode) mesh once.
type MeshCache struct {
	meshes map[meshKey]*Wireframe
}

type meshKey struct {
	kind      scene.ShapeKind
	wireframe bool
}

func NewMeshCache() *MeshCache {
	return &MeshCache{meshes: make(map[meshKey]*Wireframe)}
}

func (m *MeshCache) Get(g scene.Geometry, wireframe bool) *Wireframe {
	key := meshKey{g.Kind, wireframe}
	if w, ok := m.meshes[key]; ok {
		return w
	}
	d := solidDetail
	if wireframe {
		d = wireDetail
	}
	w := BuildWireframe(g, d)
	m.meshes[key] = w
	return w
}

// BuildWireframe returns the line mesh for a geometry descriptor.
func BuildWireframe(g scene.Geometry, d detail) *Wireframe {
	switch g.Kind {
	case scene.Sphere:
		return sphereWireframe(g.Radius, d)
	case scene.Torus:
		return torusWireframe(g.Radius, g.Tube, d)
	case scene.Cone:
		return coneWireframe(g.Radius, g.Height, d)
	default:
		return cubeWireframe(g.Size, d)
	}
}

func cubeWireframe(size float64, d detail) *Wireframe {
	w, s := NewWireframe(), size/2
	v := []scene.Vec3{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s}, {X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	if d.rings > wireDetail.rings {
		// face diagonals stand in for shading
		for _, e := range [][2]int{{0, 2}, {4, 6}, {0, 5}, {3, 6}, {0, 7}, {1, 6}} {
			w.AddEdge(v[e[0]], v[e[1]])
		}
	}
	return w
}

func circle(center scene.Vec3, radius float64, n int, plane func(c, s float64) scene.Vec3) []scene.Vec3 {
	pts := make([]scene.Vec3, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = center.Add(plane(math.Cos(a)*radius, math.Sin(a)*radius))
	}
	return pts
}

func xz(c, s float64) scene.Vec3 { return scene.Vec3{X: c, Z: s} }

func sphereWireframe(r float64, d detail) *Wireframe {
	w := NewWireframe()
	for i := 1; i <= d.rings; i++ {
		lat := -math.Pi/2 + float64(i)*math.Pi/float64(d.rings+1)
		w.addLoop(circle(scene.Vec3{Y: r * math.Sin(lat)}, r*math.Cos(lat), d.segments, xz))
	}
	meridians := d.rings + 1
	for m := 0; m < meridians; m++ {
		phi := float64(m) / float64(meridians) * math.Pi
		w.addLoop(circle(scene.Vec3{}, r, d.segments, func(c, s float64) scene.Vec3 {
			return scene.Vec3{X: c * math.Cos(phi), Y: s, Z: c * math.Sin(phi)}
		}))
	}
	return w
}

func torusWireframe(r, tube float64, d detail) *Wireframe {
	w := NewWireframe()
	w.addLoop(circle(scene.Vec3{}, r+tube, d.segments*2, xz))
	w.addLoop(circle(scene.Vec3{}, r-tube, d.segments*2, xz))
	w.addLoop(circle(scene.Vec3{Y: tube}, r, d.segments*2, xz))
	w.addLoop(circle(scene.Vec3{Y: -tube}, r, d.segments*2, xz))
	minor := d.rings * 2
	for i := 0; i < minor; i++ {
		a := float64(i) / float64(minor) * 2 * math.Pi
		dir := scene.Vec3{X: math.Cos(a), Z: math.Sin(a)}
		w.addLoop(circle(dir.Scale(r), tube, d.segments/2, func(c, s float64) scene.Vec3 {
			return dir.Scale(c).Add(scene.Vec3{Y: s})
		}))
	}
	return w
}

func coneWireframe(r, h float64, d detail) *Wireframe {
	w := NewWireframe()
	base := circle(scene.Vec3{Y: -h / 2}, r, d.segments, xz)
	w.addLoop(base)
	apex := scene.Vec3{Y: h / 2}
	step := 2
	if d.rings > wireDetail.rings {
		step = 1
	}
	for i := 0; i < len(base); i += step {
		w.AddEdge(base[i], apex)
	}
	return w
}
