package scene

import "math"

const (
	StatsWindowMs   = 1000
	fpsHistoryLimit = 120
)

// FrameStats is the readout produced after every frame.
type FrameStats struct {
	FPS                int   `json:"fps"`
	FrameCountInWindow int   `json:"-"`
	WindowStartMs      int64 `json:"-"`
	Objects            int   `json:"objects"`
	Triangles          int   `json:"triangles"`
}

// StatsSampler produces a stepped FPS value: frames are counted over a
// window and the rate is only recomputed once more than a second has
// passed, then held until the next window closes.
type StatsSampler struct {
	frames      int
	windowStart int64
	fps         int
	history     []float64
	last        FrameStats
}

func NewStatsSampler(startMs int64) *StatsSampler {
	return &StatsSampler{
		windowStart: startMs,
		history:     make([]float64, 0, fpsHistoryLimit),
	}
}

// RecordFrame counts one frame at nowMs. Triangles and objects are taken
// as given every call; only FPS is windowed.
func (s *StatsSampler) RecordFrame(nowMs int64, triangles, objects int) FrameStats {
	s.frames++
	if span := nowMs - s.windowStart; span > StatsWindowMs {
		s.fps = int(math.Round(float64(s.frames) * 1000 / float64(span)))
		s.frames = 0
		s.windowStart = nowMs
		s.history = append(s.history, float64(s.fps))
		if len(s.history) > fpsHistoryLimit {
			s.history = s.history[1:]
		}
	}
	s.last = FrameStats{
		FPS:                s.fps,
		FrameCountInWindow: s.frames,
		WindowStartMs:      s.windowStart,
		Objects:            objects,
		Triangles:          triangles,
	}
	return s.last
}

// Last returns the stats from the most recent RecordFrame.
func (s *StatsSampler) Last() FrameStats { return s.last }

// History returns a copy of the FPS value of each closed window, oldest
// first.
func (s *StatsSampler) History() []float64 {
	out := make([]float64, len(s.history))
	copy(out, s.history)
	return out
}
