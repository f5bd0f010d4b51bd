package bitmap

import (
	"image"

	"github.com/borkshop/corridor/internal/moremath"
)

// Line sets every bit on the line from p to q, inclusive, clipping anything
// outside the bitmap.
func Line(w Writer, p, q image.Point) {
	dx, dy := moremath.AbsInt(q.X-p.X), -moremath.AbsInt(q.Y-p.Y)
	sx, sy := moremath.IntSign(q.X-p.X), moremath.IntSign(q.Y-p.Y)
	err := dx + dy
	for {
		w.Set(p.X, p.Y, true)
		if p == q {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

// Rect sets the outline of r; r.Max is exclusive.
func Rect(w Writer, r image.Rectangle) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	max := r.Max.Sub(image.Pt(1, 1))
	Line(w, r.Min, image.Pt(max.X, r.Min.Y))
	Line(w, image.Pt(max.X, r.Min.Y), max)
	Line(w, max, image.Pt(r.Min.X, max.Y))
	Line(w, image.Pt(r.Min.X, max.Y), r.Min)
}

// Dot sets a small plus centered at p.
func Dot(w Writer, p image.Point) {
	w.Set(p.X, p.Y, true)
	w.Set(p.X-1, p.Y, true)
	w.Set(p.X+1, p.Y, true)
	w.Set(p.X, p.Y-1, true)
	w.Set(p.X, p.Y+1, true)
}
