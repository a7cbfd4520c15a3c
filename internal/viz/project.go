package viz

import (
	"math"

	"github.com/san-kum/orbitscene/internal/scene"
)

// Projector maps world points to canvas sub-pixels through a look-at
// perspective camera.
type Projector struct {
	eye                scene.Vec3
	right, up, forward scene.Vec3
	tanHalf, aspect    float64
	near               float64
	width, height      int
}

func NewProjector(cam scene.CameraState, width, height int) Projector {
	fwd := cam.Target.Sub(cam.Position).Normalize()
	up := cam.Up
	if up == (scene.Vec3{}) {
		up = scene.Vec3{Y: 1}
	}
	right := fwd.Cross(up).Normalize()
	aspect := cam.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return Projector{
		eye:     cam.Position,
		right:   right,
		up:      right.Cross(fwd),
		forward: fwd,
		tanHalf: math.Tan(cam.FOV / 2),
		aspect:  aspect,
		near:    cam.Near,
		width:   width,
		height:  height,
	}
}

// Project returns the sub-pixel position of p, its view depth and whether
// it lies in front of the near plane.
func (pr Projector) Project(p scene.Vec3) (int, int, float64, bool) {
	d := p.Sub(pr.eye)
	z := d.Dot(pr.forward)
	if z < pr.near || pr.tanHalf <= 0 {
		return 0, 0, z, false
	}
	nx := d.Dot(pr.right) / (z * pr.tanHalf * pr.aspect)
	ny := d.Dot(pr.up) / (z * pr.tanHalf)
	sx := int(math.Round((nx + 1) / 2 * float64(pr.width-1)))
	sy := int(math.Round((1 - ny) / 2 * float64(pr.height-1)))
	return sx, sy, z, true
}

// Depth is the view-space distance of p along the camera axis.
func (pr Projector) Depth(p scene.Vec3) float64 {
	return p.Sub(pr.eye).Dot(pr.forward)
}

// RotateXYZ applies Euler rotation in X, then Y, then Z intrinsic order,
// matching a rotation matrix Rx·Ry·Rz.
func RotateXYZ(p, r scene.Vec3) scene.Vec3 {
	cz, sz := math.Cos(r.Z), math.Sin(r.Z)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cy, sy := math.Cos(r.Y), math.Sin(r.Y)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(r.X), math.Sin(r.X)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}
