package scene

import "math"

const (
	CameraFollowScale = 5.0
	CameraSmoothing   = 0.02
)

// HomePosition is where the camera starts and where Reset puts it.
var HomePosition = Vec3{0, 5, 15}

// CameraState is the view a renderer needs for one frame.
type CameraState struct {
	Position, Target, Up Vec3
	FOV                  float64 // vertical, radians
	Near, Far            float64
	Aspect               float64
}

// CameraController eases the camera toward a pointer-derived target. The
// look-at target is always the origin.
type CameraController struct {
	state CameraState
}

func NewCameraController(aspect float64) *CameraController {
	if aspect <= 0 {
		aspect = 1
	}
	return &CameraController{state: CameraState{
		Position: HomePosition,
		Up:       Vec3{0, 1, 0},
		FOV:      75 * math.Pi / 180,
		Near:     0.1,
		Far:      1000,
		Aspect:   aspect,
	}}
}

// Update moves x/y a fixed fraction of the way toward target*5. It is a
// no-op when autoRotate is off.
func (c *CameraController) Update(target Vec2, autoRotate bool) {
	if !autoRotate {
		return
	}
	p := &c.state.Position
	p.X += (target.X*CameraFollowScale - p.X) * CameraSmoothing
	p.Y += (target.Y*CameraFollowScale - p.Y) * CameraSmoothing
	c.lookAtOrigin()
}

// Reset returns the camera to HomePosition regardless of orbit state.
func (c *CameraController) Reset() {
	c.state.Position = HomePosition
	c.lookAtOrigin()
}

func (c *CameraController) lookAtOrigin() { c.state.Target = Vec3{} }

func (c *CameraController) SetAspect(aspect float64) {
	if aspect > 0 {
		c.state.Aspect = aspect
	}
}

func (c *CameraController) State() CameraState { return c.state }
