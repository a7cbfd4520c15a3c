package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	EntitySaturation = 0.7
	EntityLightness  = 0.6
)

// HSL is a color with all channels in [0, 1].
type HSL struct {
	H, S, L float64
}

// Color converts to an RGB color; go-colorful takes hue in degrees.
func (c HSL) Color() colorful.Color {
	return colorful.Hsl(c.H*360, c.S, c.L).Clamped()
}

// Hex returns the color as "#rrggbb".
func (c HSL) Hex() string { return c.Color().Hex() }

// RGB8 returns 8-bit channels.
func (c HSL) RGB8() (r, g, b uint8) { return c.Color().RGB255() }

// wrapEpsilon absorbs rounding left over when v is meant to be an integer.
const wrapEpsilon = 1e-12

// wrapUnit maps v into [0, 1).
func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	if v < wrapEpsilon || v > 1-wrapEpsilon {
		return 0
	}
	return v
}
