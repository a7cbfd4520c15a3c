package metrics

import "github.com/san-kum/orbitscene/internal/scene"

// Stability is the fraction of measured frames whose FPS reached the
// threshold. Frames before the first closed window are not counted.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(frame int, st scene.FrameStats) {
	if st.FPS == 0 {
		return
	}
	s.samples++
	if float64(st.FPS) < s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
