package math

import (
	stdmath "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * stdmath.Pi / 180.0
}

// MipLevels returns the length of the mip chain for a base extent,
// counting the base level.
func MipLevels(width, height uint32) uint32 {
	larger := width
	if height > larger {
		larger = height
	}
	levels := uint32(1)
	for larger > 1 {
		larger >>= 1
		levels++
	}
	return levels
}
