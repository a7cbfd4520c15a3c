package scene

import "math"

const (
	FloatAmplitude = 0.5
	FloatFrequency = 2.0
	OrbitRate      = 0.5
	HueRate        = 0.1
	HueIndexStep   = 0.1

	// referenceTickRate converts RotationPerSecond increments back to the
	// per-tick scale so both modes spin at the same rate at 60 FPS.
	referenceTickRate = 60.0
)

// FloatY is the vertical float height for an entity at time t.
func FloatY(baseY, t float64, index int) float64 {
	return baseY + math.Sin(t*FloatFrequency+float64(index))*FloatAmplitude
}

// OrbitXZ is the orbital x/z position for index out of count at time t.
func OrbitXZ(t, animationSpeed float64, index, count int) (x, z float64) {
	angle := t*OrbitRate*animationSpeed + float64(index)/float64(count)*2*math.Pi
	return math.Cos(angle) * OrbitRadius, math.Sin(angle) * OrbitRadius
}

// HueAt is the cycling hue for index at time t, wrapped into [0, 1).
func HueAt(t float64, index int) float64 {
	return wrapUnit(t*HueRate + float64(index)*HueIndexStep)
}

// Animate advances one entity to elapsed time t. count is the live entity
// count, dt the clamped frame delta (only read in RotationPerSecond mode).
func Animate(e *Entity, t, dt float64, count int, cfg Config, mode RotationMode) {
	rate := cfg.RotationSpeed * cfg.AnimationSpeed
	if mode == RotationPerSecond {
		rate *= dt * referenceTickRate
	}
	e.Rotation = e.Rotation.Add(e.RotationVelocity.Scale(rate))

	e.Position.Y = FloatY(e.BasePosition.Y, t, e.Index)

	if cfg.AutoRotate && count > 0 {
		e.Position.X, e.Position.Z = OrbitXZ(t, cfg.AnimationSpeed, e.Index, count)
	}

	e.Material.Color = HSL{HueAt(t, e.Index), EntitySaturation, EntityLightness}
}

// AnimateAll runs Animate over every entity with one configuration snapshot.
func AnimateAll(entities []*Entity, t, dt float64, cfg Config, mode RotationMode) {
	n := len(entities)
	for _, e := range entities {
		Animate(e, t, dt, n, cfg, mode)
	}
}
