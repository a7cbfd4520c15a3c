package scene

import (
	"math"
	"sync/atomic"
)

const (
	MinObjects        = 1
	MaxObjects        = 20
	MaxRotationSpeed  = 5.0
	MinAnimationSpeed = 0.1
	MaxAnimationSpeed = 3.0
)

// RotationMode selects how the rotation accumulator advances.
type RotationMode int

const (
	// RotationPerTick adds a fixed increment every frame, so the spin rate
	// follows the host frame rate.
	RotationPerTick RotationMode = iota
	// RotationPerSecond scales the increment by delta time against a 60 Hz
	// reference tick.
	RotationPerSecond
)

func (m RotationMode) String() string {
	if m == RotationPerSecond {
		return "per_second"
	}
	return "per_tick"
}

// ParseRotationMode maps a config string to a RotationMode. Unknown
// values fall back to RotationPerTick.
func ParseRotationMode(s string) RotationMode {
	if s == "per_second" {
		return RotationPerSecond
	}
	return RotationPerTick
}

// Config is the live configuration consumed once per frame.
type Config struct {
	RotationSpeed  float64 `json:"rotation_speed"`
	ObjectCount    int     `json:"object_count"`
	AnimationSpeed float64 `json:"animation_speed"`
	Wireframe      bool    `json:"wireframe"`
	AutoRotate     bool    `json:"auto_rotate"`
}

func DefaultConfig() Config {
	return Config{
		RotationSpeed:  1.0,
		ObjectCount:    8,
		AnimationSpeed: 1.0,
		Wireframe:      false,
		AutoRotate:     true,
	}
}

// Clamp returns c with every field forced into its valid range.
// NaN speeds fall back to the defaults.
func (c Config) Clamp() Config {
	c = c.ClampSpeeds()
	c.ObjectCount = ClampCount(c.ObjectCount)
	return c
}

// ClampSpeeds clamps the speed fields and leaves the object count as given.
func (c Config) ClampSpeeds() Config {
	d := DefaultConfig()
	if math.IsNaN(c.RotationSpeed) {
		c.RotationSpeed = d.RotationSpeed
	}
	if math.IsNaN(c.AnimationSpeed) {
		c.AnimationSpeed = d.AnimationSpeed
	}
	c.RotationSpeed = clampFloat(c.RotationSpeed, 0, MaxRotationSpeed)
	c.AnimationSpeed = clampFloat(c.AnimationSpeed, MinAnimationSpeed, MaxAnimationSpeed)
	return c
}

// ClampCount forces n into [MinObjects, MaxObjects].
func ClampCount(n int) int {
	if n < MinObjects {
		return MinObjects
	}
	if n > MaxObjects {
		return MaxObjects
	}
	return n
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ConfigStore holds the latest configuration as an atomic snapshot. The UI
// layer writes whole records; the frame loop loads one per frame so every
// entity in a frame sees the same values. A strict store passes the object
// count through unclamped so the registry can reject it.
type ConfigStore struct {
	v      atomic.Pointer[Config]
	strict bool
}

func NewConfigStore(c Config, strict bool) *ConfigStore {
	s := &ConfigStore{strict: strict}
	s.Store(c)
	return s
}

func (s *ConfigStore) clamp(c Config) Config {
	if s.strict {
		return c.ClampSpeeds()
	}
	return c.Clamp()
}

// Store clamps c and publishes it.
func (s *ConfigStore) Store(c Config) {
	c = s.clamp(c)
	s.v.Store(&c)
}

func (s *ConfigStore) Load() Config {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return DefaultConfig()
}

// Update applies fn to the current snapshot and publishes the result.
// Concurrent writers retry until their update lands on the value they read.
func (s *ConfigStore) Update(fn func(Config) Config) Config {
	for {
		old := s.v.Load()
		cur := DefaultConfig()
		if old != nil {
			cur = *old
		}
		next := s.clamp(fn(cur))
		if s.v.CompareAndSwap(old, &next) {
			return next
		}
	}
}
