package geom

import "math"

// Bx is a convenience constructor for Box, taking an origin and a size.
func Bx(x, y, w, h float64) Box {
	return Box{Vec{x, y}, Vec{x + w, y + h}}
}

// Box represents an axis-aligned bounding box defined by its minimum and
// maximum corners.
type Box struct {
	Min, Max Vec
}

// Size returns the width and height of the box as a vector.
func (b Box) Size() Vec {
	return b.Max.Sub(b.Min)
}

// Empty returns true if the box has no area.
func (b Box) Empty() bool {
	return b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y
}

// Canon returns a copy of the box with its corners swapped as needed so that
// Min is the top-left corner.
func (b Box) Canon() Box {
	return Box{b.Min.Min(b.Max), b.Min.Max(b.Max)}
}

// Contains returns true if a given point is inside the box, inclusive of its
// edges.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ExpandTo grows a copy of the box to include the given point, returning the
// copy.
func (b Box) ExpandTo(p Vec) Box {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
	return b
}

// ClosestPoint returns the point within the box nearest to p.
func (b Box) ClosestPoint(p Vec) Vec {
	return Vec{
		math.Max(b.Min.X, math.Min(p.X, b.Max.X)),
		math.Max(b.Min.Y, math.Min(p.Y, b.Max.Y)),
	}
}

// IntersectsCircle returns true if a circle at c with radius r overlaps the
// box.
func (b Box) IntersectsCircle(c Vec, r float64) bool {
	return b.ClosestPoint(c).Sub(c).SumSQ() < r*r
}

// Edges returns the four sides of the box, clockwise from the top.
func (b Box) Edges() [4]Segment {
	tl, br := b.Min, b.Max
	tr, bl := Vec{br.X, tl.Y}, Vec{tl.X, br.Y}
	return [4]Segment{
		{tl, tr},
		{tr, br},
		{br, bl},
		{bl, tl},
	}
}
