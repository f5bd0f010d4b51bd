package geom

import "math"

// Seg is a convenience constructor for Segment.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Vec{x1, y1}, Vec{x2, y2}}
}

// Segment is a line segment between two end points.
type Segment struct {
	A, B Vec
}

// Len returns the length of the segment.
func (s Segment) Len() float64 {
	return s.B.Sub(s.A).Len()
}

// Lerp returns the point at parameter t along the segment, A at 0 and B at 1.
func (s Segment) Lerp(t float64) Vec {
	return s.A.Add(s.B.Sub(s.A).Mul(t))
}

// Project returns the projection parameter of p onto the segment's line,
// clamped into [0, 1]. Degenerate segments project everything onto A.
func (s Segment) Project(p Vec) float64 {
	d := s.B.Sub(s.A)
	n := d.SumSQ()
	if n == 0 {
		return 0
	}
	t := p.Sub(s.A).Dot(d) / n
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// DistanceTo returns the distance from p to the nearest point of the segment,
// and the parameter of that point. When the projection of p falls within the
// segment this is the perpendicular distance, otherwise it is the distance to
// the nearest end point.
func (s Segment) DistanceTo(p Vec) (dist, t float64) {
	t = s.Project(p)
	return p.DistanceTo(s.Lerp(t)), t
}

// Intersect casts a ray from origin along dir against the segment. It returns
// the distance along the ray to the hit (in units of dir's length), the hit
// parameter along the segment, and whether there was a hit in front of the
// origin. Rays parallel to the segment never hit.
func (s Segment) Intersect(origin, dir Vec) (dist, u float64, ok bool) {
	e := s.B.Sub(s.A)
	den := dir.Cross(e)
	if math.Abs(den) < 1e-12 {
		return 0, 0, false
	}
	w := s.A.Sub(origin)
	lambda := w.Cross(e) / den
	if lambda <= 0 {
		return 0, 0, false
	}
	u = w.Cross(dir) / den
	if u < 0 || u > 1 {
		return 0, 0, false
	}
	return lambda * dir.Len(), u, true
}
