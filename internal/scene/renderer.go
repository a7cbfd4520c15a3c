package scene

// Frame is everything a renderer needs to draw one frame. Entities are
// owned by the runtime and must not be retained after Draw returns.
type Frame struct {
	Number   uint64
	Elapsed  float64
	Entities []*Entity
	Camera   CameraState
	Viewport Viewport
	Config   Config
	Stats    FrameStats // stats as of the previous frame
}

// Renderer turns a frame into pixels. Init must succeed before any Draw.
type Renderer interface {
	Init(width, height int) error
	Resize(width, height int)
	Draw(f Frame) error
	Close() error
}
