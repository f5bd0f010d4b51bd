package raycast

import "math"

const (
	// minCos keeps fisheye correction away from zero at grazing angles.
	minCos = 1e-3
	// minDistance keeps corrected distances away from zero.
	minDistance = 1e-6
)

// RayAngle returns the angle of column i's ray in a view w columns wide.
func RayAngle(angle, fov float64, i, w int) float64 {
	return angle - fov/2 + fov*float64(i)/float64(w)
}

// Corrected projects a ray distance onto the view direction, removing the
// fisheye distortion; the result is never smaller than a tiny positive value.
func Corrected(dist, rayAngle, angle float64) float64 {
	c := math.Cos(rayAngle - angle)
	if c < minCos {
		c = minCos
	}
	if d := dist * c; d > minDistance {
		return d
	}
	return minDistance
}

// WallHeight returns the on screen height of a wall slice at the given
// corrected distance in a view h rows tall; it is inversely proportional to
// the distance and never exceeds h.
func (cfg Config) WallHeight(corrected float64, h int) float64 {
	if h <= 0 {
		return 0
	}
	if corrected < minDistance {
		corrected = minDistance
	}
	return math.Min(float64(h), cfg.WallScale*float64(h)/corrected)
}

// Brightness returns the shade of a wall slice at the given corrected
// distance: 1 up close, falling linearly to MinBrightness at MaxRange.
func (cfg Config) Brightness(corrected float64) float64 {
	b := 1 - corrected/cfg.MaxRange
	if b < cfg.MinBrightness {
		return cfg.MinBrightness
	}
	if b > 1 {
		return 1
	}
	return b
}
