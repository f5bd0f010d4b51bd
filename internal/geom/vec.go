package geom

import "math"

// V is a convenience constructor for Vec.
func V(x, y float64) Vec { return Vec{x, y} }

// Vec represents a point or displacement in <X,Y> 2-space.
type Vec struct{ X, Y float64 }

// FromAngle returns the unit vector pointing along the given angle in
// radians.
func FromAngle(a float64) Vec {
	s, c := math.Sincos(a)
	return Vec{c, s}
}

// Add adds another vector's values to a copy of this vector, returning the
// copy.
func (v Vec) Add(other Vec) Vec {
	v.X += other.X
	v.Y += other.Y
	return v
}

// Sub subtracts another vector's values from a copy of this vector, returning
// the copy.
func (v Vec) Sub(other Vec) Vec {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

// Mul scales a copy of this vector by a constant, returning the copy.
func (v Vec) Mul(k float64) Vec {
	v.X *= k
	v.Y *= k
	return v
}

// Dot returns the dot product of this vector with another.
func (v Vec) Dot(other Vec) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3-space cross product of this vector
// with another.
func (v Vec) Cross(other Vec) float64 {
	return v.X*other.Y - v.Y*other.X
}

// SumSQ returns the sum-of-squared components.
func (v Vec) SumSQ() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the euclidean length of the vector.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Norm returns a unit length copy of the vector; the zero vector stays zero.
func (v Vec) Norm() Vec {
	if n := v.Len(); n > 0 {
		return v.Mul(1 / n)
	}
	return v
}

// Rotate returns a copy of the vector rotated by a radians.
func (v Vec) Rotate(a float64) Vec {
	s, c := math.Sincos(a)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Perp returns the vector rotated a quarter turn towards +Y; for a heading
// vector that is the viewer's right hand side.
func (v Vec) Perp() Vec {
	return Vec{-v.Y, v.X}
}

// Angle returns the heading of the vector in radians.
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// DistanceTo returns the euclidean distance to another point.
func (v Vec) DistanceTo(other Vec) float64 {
	return other.Sub(v).Len()
}

// Min returns a copy of this vector with each component the minimum of the
// two vectors' components.
func (v Vec) Min(other Vec) Vec {
	return Vec{math.Min(v.X, other.X), math.Min(v.Y, other.Y)}
}

// Max returns a copy of this vector with each component the maximum of the
// two vectors' components.
func (v Vec) Max(other Vec) Vec {
	return Vec{math.Max(v.X, other.X), math.Max(v.Y, other.Y)}
}
