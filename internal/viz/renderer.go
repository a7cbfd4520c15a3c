package viz

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitscene/internal/scene"
)

// ErrCanvasTooSmall is returned by Init for a target smaller than one
// braille cell.
var ErrCanvasTooSmall = errors.New("viz: canvas smaller than one cell")

// CanvasRenderer draws frames as colored braille text. Sizes passed to
// Init and Resize are in sub-pixels (2 per column, 4 per row).
type CanvasRenderer struct {
	mu     sync.Mutex
	canvas *Canvas
	meshes *MeshCache
	theme  Theme
	out    string
	frames uint64
}

func NewCanvasRenderer(theme Theme) *CanvasRenderer {
	return &CanvasRenderer{meshes: NewMeshCache(), theme: theme}
}

func (r *CanvasRenderer) Init(width, height int) error {
	if width < 2 || height < 4 {
		return fmt.Errorf("%w: %dx%d", ErrCanvasTooSmall, width, height)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas = NewCanvas(width/2, height/4)
	return nil
}

func (r *CanvasRenderer) Resize(width, height int) {
	if width < 2 || height < 4 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas = NewCanvas(width/2, height/4)
}

func (r *CanvasRenderer) SetTheme(t Theme) {
	r.mu.Lock()
	r.theme = t
	r.mu.Unlock()
}

// Draw projects every entity far to near so closer shapes own the cells
// they share with farther ones.
func (r *CanvasRenderer) Draw(f scene.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas == nil {
		return scene.ErrNotReady
	}
	c := r.canvas
	c.Clear()
	pw, ph := c.PixelSize()
	proj := NewProjector(f.Camera, pw, ph)

	c.SetPen(r.theme.Ring)
	r.drawLoop(proj, circle(scene.Vec3{}, scene.OrbitRadius, 64, xz))

	order := make([]*scene.Entity, len(f.Entities))
	copy(order, f.Entities)
	sort.SliceStable(order, func(i, j int) bool {
		return proj.Depth(order[i].Position) > proj.Depth(order[j].Position)
	})

	for _, e := range order {
		c.SetPen(lipgloss.Color(e.Material.Color.Hex()))
		mesh := r.meshes.Get(e.Geometry, e.Material.Wireframe)
		for _, edge := range mesh.Edges {
			a := RotateXYZ(edge.Start, e.Rotation).Add(e.Position)
			b := RotateXYZ(edge.End, e.Rotation).Add(e.Position)
			r.drawSegment(proj, a, b)
		}
	}

	r.out = c.Render()
	r.frames++
	return nil
}

func (r *CanvasRenderer) drawLoop(proj Projector, pts []scene.Vec3) {
	for i := range pts {
		r.drawSegment(proj, pts[i], pts[(i+1)%len(pts)])
	}
}

func (r *CanvasRenderer) drawSegment(proj Projector, a, b scene.Vec3) {
	x1, y1, _, v1 := proj.Project(a)
	x2, y2, _, v2 := proj.Project(b)
	if v1 && v2 {
		r.canvas.DrawLine(x1, y1, x2, y2)
	}
}

// Output returns the most recently drawn frame.
func (r *CanvasRenderer) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out
}

// Plain returns the most recent frame without color codes.
func (r *CanvasRenderer) Plain() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas == nil {
		return ""
	}
	return r.canvas.String()
}

// Snapshot returns a copy of the canvas as last drawn, or nil before Init.
func (r *CanvasRenderer) Snapshot() *Canvas {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas == nil {
		return nil
	}
	c := NewCanvas(r.canvas.Width, r.canvas.Height)
	for i := range c.Grid {
		copy(c.Grid[i], r.canvas.Grid[i])
		copy(c.Colors[i], r.canvas.Colors[i])
	}
	return c
}

func (r *CanvasRenderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *CanvasRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas = nil
	r.out = ""
	return nil
}
