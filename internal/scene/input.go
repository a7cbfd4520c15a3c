package scene

import "sync"

// NormalizePointer maps a pixel position inside a w×h viewport to
// normalized device coordinates, y up. Positions outside the viewport map
// outside [-1, 1]. A degenerate viewport yields the origin.
func NormalizePointer(px, py, w, h float64) Vec2 {
	if w <= 0 || h <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: px/w*2 - 1,
		Y: -(py/h)*2 + 1,
	}
}

// PointerCell holds the most recent raw pointer position in pixels. The
// event handler writes, the frame reads; the latest write wins.
type PointerCell struct {
	mu  sync.Mutex
	v   Vec2
	set bool
}

func (p *PointerCell) Set(x, y float64) {
	p.mu.Lock()
	p.v, p.set = Vec2{x, y}, true
	p.mu.Unlock()
}

// Get returns the latest position and whether any has been written.
func (p *PointerCell) Get() (Vec2, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v, p.set
}

func (p *PointerCell) Clear() {
	p.mu.Lock()
	p.v, p.set = Vec2{}, false
	p.mu.Unlock()
}
