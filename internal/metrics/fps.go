package metrics

import "github.com/san-kum/orbitscene/internal/scene"

// MeanFPS averages the reported FPS over frames where a stats window has
// already closed.
type MeanFPS struct {
	name    string
	sum     float64
	samples int
}

func NewMeanFPS() *MeanFPS {
	return &MeanFPS{
		name: "mean_fps",
	}
}

func (m *MeanFPS) Name() string {
	return m.name
}

func (m *MeanFPS) Observe(frame int, s scene.FrameStats) {
	if s.FPS == 0 {
		return
	}
	m.sum += float64(s.FPS)
	m.samples++
}

func (m *MeanFPS) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanFPS) Reset() {
	m.sum = 0
	m.samples = 0
}

type PeakTriangles struct {
	name string
	peak int
}

func NewPeakTriangles() *PeakTriangles { return &PeakTriangles{name: "peak_triangles"} }

func (p *PeakTriangles) Name() string { return p.name }

func (p *PeakTriangles) Observe(frame int, s scene.FrameStats) {
	if s.Triangles > p.peak {
		p.peak = s.Triangles
	}
}

func (p *PeakTriangles) Value() float64 { return float64(p.peak) }
func (p *PeakTriangles) Reset()         { p.peak = 0 }
