// Package minimap sketches a level overview, with the viewer's field of
// view, as braille.
package minimap

import (
	"image"
	"math"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"

	"github.com/borkshop/corridor/internal/bitmap"
	"github.com/borkshop/corridor/internal/braille"
	"github.com/borkshop/corridor/internal/geom"
	"github.com/borkshop/corridor/internal/level"
)

// Scene is what the minimap shows.
type Scene struct {
	Level *level.Level
	// Viewer and Angle place the view cone, which is FOV wide and Range long.
	Viewer geom.Vec
	Angle  float64
	FOV    float64
	Range  float64
	// Enemy is drawn as a small box if set.
	Enemy *geom.Vec
}

// Map is a braille minimap some number of cells wide.
type Map struct {
	Style tcell.Style

	cells image.Point
	bm    *bitmap.Bitmap
	scale float64
	min   geom.Vec
}

// New returns a map w cells wide, tall enough to show bounds undistorted.
func New(w int, bounds geom.Box) *Map {
	m := &Map{Style: tcell.StyleDefault}
	m.Fit(w, bounds)
	return m
}

// Fit resizes the map for new level bounds.
func (m *Map) Fit(w int, bounds geom.Box) {
	if w < 1 {
		w = 1
	}
	size := bounds.Size()
	h := 1
	if size.X > 0 {
		// braille dots are about square: 2 wide and 4 tall per cell
		h = int(math.Ceil(float64(2*w) * size.Y / size.X / 4))
		if h < 1 {
			h = 1
		}
	}
	m.cells = image.Pt(w, h)
	m.bm = bitmap.New(braille.Bounds(image.Rectangle{Max: m.cells}, image.ZP))
	dots := m.bm.Rect.Size()
	m.min = bounds.Min
	m.scale = 0
	if size.X > 0 && size.Y > 0 {
		m.scale = math.Min(float64(dots.X-1)/size.X, float64(dots.Y-1)/size.Y)
	}
}

// Size returns the map size in cells.
func (m *Map) Size() (int, int) { return m.cells.X, m.cells.Y }

// Bitmap returns the dots last drawn.
func (m *Map) Bitmap() *bitmap.Bitmap { return m.bm }

// Dot returns the bitmap point for a world position.
func (m *Map) Dot(p geom.Vec) image.Point {
	q := p.Sub(m.min).Mul(m.scale)
	return image.Pt(int(math.Round(q.X)), int(math.Round(q.Y)))
}

// Draw sketches a scene onto the map's bitmap.
func (m *Map) Draw(sc Scene) {
	m.bm.Clear()
	if sc.Level == nil {
		return
	}
	for _, w := range sc.Level.Walls {
		bitmap.Line(m.bm, m.Dot(w.A), m.Dot(w.B))
	}
	for _, o := range sc.Level.Obstacles {
		for _, e := range o.Edges() {
			bitmap.Line(m.bm, m.Dot(e.A), m.Dot(e.B))
		}
	}

	eye := m.Dot(sc.Viewer)
	bitmap.Dot(m.bm, eye)
	if sc.Range > 0 {
		ray := geom.FromAngle(sc.Angle).Mul(sc.Range)
		for _, a := range []float64{-sc.FOV / 2, sc.FOV / 2} {
			bitmap.Line(m.bm, eye, m.Dot(sc.Viewer.Add(ray.Rotate(a))))
		}
	}

	if sc.Enemy != nil {
		p := m.Dot(*sc.Enemy)
		bitmap.Rect(m.bm, image.Rect(p.X-1, p.Y-1, p.X+2, p.Y+2))
	}
}

// Render writes the map onto a view.
func (m *Map) Render(v views.View) {
	braille.Draw(v, m.bm, image.ZP, image.ZP, m.Style)
}
