package scene

// Viewport tracks the current render target size.
type Viewport struct {
	Width, Height int
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// Resize records a new size and pushes the aspect into cam. Non-positive
// sizes are ignored and reported as ErrInvalidViewport.
func (v *Viewport) Resize(w, h int, cam *CameraController) (changed bool, err error) {
	if w <= 0 || h <= 0 {
		return false, ErrInvalidViewport
	}
	if w == v.Width && h == v.Height {
		return false, nil
	}
	v.Width, v.Height = w, h
	if cam != nil {
		cam.SetAspect(v.Aspect())
	}
	return true, nil
}
