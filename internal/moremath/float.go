package moremath

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Clamp limits x to the closed range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WrapAngle maps an angle in radians into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	return a
}

// AngleDiff returns the signed smallest rotation from a to b, in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := WrapAngle(b - a)
	if d > math.Pi {
		d -= Tau
	}
	return d
}

// ScaleByte scales an 8-bit channel value by k, saturating at 255.
func ScaleByte(c uint8, k float64) uint8 {
	v := float64(c) * k
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
