package scene

import (
	"errors"
	"fmt"
)

// Domain errors for scene operations.
var (
	// ErrNotReady indicates the runtime has no valid render target.
	ErrNotReady = errors.New("scene: renderer not ready")

	// ErrObjectCount indicates an object count outside [MinObjects, MaxObjects].
	ErrObjectCount = errors.New("scene: object count out of range")

	// ErrInvalidViewport indicates a non-positive viewport dimension.
	ErrInvalidViewport = errors.New("scene: invalid viewport size")
)

// FrameError wraps a failure that aborted a single frame.
type FrameError struct {
	Frame   uint64
	Elapsed float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.3fs): %v", e.Frame, e.Elapsed, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
