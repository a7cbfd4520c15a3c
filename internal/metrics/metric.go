// Package metrics reduces a stream of frame stats to single values that
// are stored with a run.
package metrics

import "github.com/san-kum/orbitscene/internal/scene"

type Metric interface {
	Name() string
	Observe(frame int, s scene.FrameStats)
	Value() float64
	Reset()
}

// Defaults is the metric set headless runs record.
func Defaults(targetFPS int) []Metric {
	return []Metric{
		NewMeanFPS(),
		NewStability(float64(targetFPS) * 0.9),
		NewPeakTriangles(),
	}
}

// Collect returns name → value for ms.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
