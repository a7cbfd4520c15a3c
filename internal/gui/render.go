package gui

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitscene/internal/scene"
)

// HUD and backdrop colors. Entities are drawn in their own material color.
var (
	colBackdrop = rl.NewColor(10, 10, 10, 255)
	colRing     = rl.NewColor(30, 30, 30, 255)
	colTitle    = rl.NewColor(255, 255, 255, 255)
	colFPS      = rl.NewColor(180, 180, 180, 255)
	colReadout  = rl.NewColor(140, 140, 140, 255)
	colHint     = rl.NewColor(60, 60, 60, 255)
)

var errNoWindow = errors.New("gui: window did not open")

// Renderer draws frames into a native raylib window. Init opens the
// window; Close unloads the meshes and closes it. All calls must come
// from the goroutine that called Init.
type Renderer struct {
	Title     string
	TargetFPS int

	models map[scene.ShapeKind]rl.Model
	width  int
	height int
	open   bool
}

func NewRenderer(title string, targetFPS int) *Renderer {
	return &Renderer{Title: title, TargetFPS: targetFPS, models: make(map[scene.ShapeKind]rl.Model)}
}

func (r *Renderer) Init(width, height int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), r.Title)
	if !rl.IsWindowReady() {
		return errNoWindow
	}
	rl.SetTargetFPS(int32(r.TargetFPS))
	rl.SetExitKey(0)

	for _, k := range scene.ShapeKinds() {
		r.models[k] = rl.LoadModelFromMesh(genMesh(scene.GeometryFor(k)))
	}
	r.width, r.height, r.open = width, height, true
	return nil
}

// genMesh builds the GPU mesh for one geometry descriptor.
func genMesh(g scene.Geometry) rl.Mesh {
	switch g.Kind {
	case scene.Sphere:
		return rl.GenMeshSphere(float32(g.Radius), g.TubularSegments, g.RadialSegments)
	case scene.Torus:
		return rl.GenMeshTorus(float32(g.Radius), float32(g.Tube), g.TubularSegments, g.RadialSegments)
	case scene.Cone:
		return rl.GenMeshCone(float32(g.Radius), float32(g.Height), g.RadialSegments)
	default:
		s := float32(g.Size)
		return rl.GenMeshCube(s, s, s)
	}
}

// Resize only records the size; raylib resizes the framebuffer itself.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

func (r *Renderer) Draw(f scene.Frame) error {
	if !r.open {
		return scene.ErrNotReady
	}

	rl.BeginDrawing()
	rl.ClearBackground(colBackdrop)

	rl.BeginMode3D(camera3D(f.Camera))
	rl.DrawCircle3D(rl.NewVector3(0, 0, 0), scene.OrbitRadius, rl.NewVector3(1, 0, 0), 90, colRing)
	for _, e := range f.Entities {
		r.drawEntity(e)
	}
	rl.EndMode3D()

	r.drawHUD(f)
	rl.EndDrawing()
	return nil
}

func (r *Renderer) drawEntity(e *scene.Entity) {
	model, ok := r.models[e.Kind]
	if !ok {
		return
	}
	rot := rl.MatrixRotateXYZ(vec3(e.Rotation))
	if e.Kind == scene.Cone {
		// raylib cones start at y=0; center them like the other shapes
		rot = rl.MatrixMultiply(rl.MatrixTranslate(0, -float32(e.Geometry.Height)/2, 0), rot)
	}
	model.Transform = rot

	cr, cg, cb := e.Material.Color.RGB8()
	col := rl.NewColor(cr, cg, cb, 255)
	if e.Material.Wireframe {
		rl.DrawModelWires(model, vec3(e.Position), 1, col)
		return
	}
	rl.DrawModel(model, vec3(e.Position), 1, col)
}

func (r *Renderer) drawHUD(f scene.Frame) {
	drawText("orbitscene", 30, 30, 24, colTitle)

	status := "ORBITING"
	col := colTitle
	if !f.Config.AutoRotate {
		status = "FROZEN"
		col = colHint
	}
	drawText(status, r.width-150, 30, 16, col)

	drawText(fmt.Sprintf("%d FPS", f.Stats.FPS), 30, 70, 16, colFPS)
	drawText(fmt.Sprintf("%d objects", f.Stats.Objects), 30, 92, 16, colReadout)
	drawText(fmt.Sprintf("%d triangles", f.Stats.Triangles), 30, 114, 16, colReadout)

	drawText("[+/-] ROT  [ [/] ] COUNT  [</>] SPEED  [W] WIRE  [O] ORBIT  [C] CAMERA  [Q] QUIT",
		30, r.height-40, 14, colHint)
}

func drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

func (r *Renderer) Close() error {
	if !r.open {
		return nil
	}
	for k, m := range r.models {
		rl.UnloadModel(m)
		delete(r.models, k)
	}
	rl.CloseWindow()
	r.open = false
	return nil
}

func vec3(v scene.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func camera3D(c scene.CameraState) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       float32(c.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}
