package frame

import (
	"image/color"
	"math"

	"github.com/borkshop/corridor/internal/geom"
	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/moremath"
	"github.com/borkshop/corridor/internal/raycast"
)

// Palette colors everything that is not a wall.
type Palette struct {
	Ceiling color.RGBA
	Floor   color.RGBA
	// Horizon is how bright the ceiling and floor get at the horizon,
	// relative to their color at the frame edge.
	Horizon float64
	// Edge is how far from a wall's end, in world units, its edge shading
	// extends; Edging is the brightness factor applied there.
	Edge   float64
	Edging float64
}

// DefaultPalette is a dim stone ceiling over a darker floor.
var DefaultPalette = Palette{
	Ceiling: color.RGBA{0x3a, 0x40, 0x4c, 0xff},
	Floor:   color.RGBA{0x4a, 0x3e, 0x30, 0xff},
	Horizon: 0.25,
	Edge:    1.5,
	Edging:  0.6,
}

// Surfaces is what the rays were cast against; *level.Level is one.
type Surfaces interface {
	Surfaces() []geom.Segment
	SurfaceColor(i int) level.Color
}

// Scale returns c with each color channel scaled by k.
func Scale(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: moremath.ScaleByte(c.R, k),
		G: moremath.ScaleByte(c.G, k),
		B: moremath.ScaleByte(c.B, k),
		A: c.A,
	}
}

// DrawView draws a first person view: the ceiling and floor gradients, then a
// one pixel wide slice per column, of the column's height, centered
// vertically and shaded by its brightness. Columns should have been cast for
// this frame's pixel size; any beyond its width are ignored.
func (f *Frame) DrawView(cols []raycast.Column, surf Surfaces, pal Palette) {
	w, h := f.Pixels()
	half := h / 2
	for y := 0; y < h; y++ {
		var c color.RGBA
		if y < half {
			c = Scale(pal.Ceiling, moremath.Lerp(1, pal.Horizon, float64(y)/float64(half)))
		} else {
			c = Scale(pal.Floor, moremath.Lerp(pal.Horizon, 1, float64(y-half+1)/float64(h-half)))
		}
		for x := 0; x < w; x++ {
			f.SetRGBA(x, y, c)
		}
	}
	for x := range f.depth {
		f.depth[x] = math.Inf(1)
	}

	segs := surf.Surfaces()
	for _, col := range cols {
		x := col.Index
		if x < 0 || x >= w || !col.Hit {
			continue
		}
		f.depth[x] = col.Corrected

		k := col.Brightness
		var along float64
		if col.Wall >= 0 && col.Wall < len(segs) {
			l := segs[col.Wall].Len()
			along = col.U * l
			if pal.Edge > 0 && (along < pal.Edge || l-along < pal.Edge) {
				k *= pal.Edging
			}
		}
		base := surf.SurfaceColor(col.Wall).RGBA()
		c := Scale(base, k)
		top, bot := span(col.Height, h)
		start := (float64(h) - col.Height) / 2
		for y := top; y < bot; y++ {
			if f.grain != nil {
				down := (float64(y) + 0.5 - start) / col.Height
				n := f.grain.Eval2(along/grainSize, down*grainRows)
				c = Scale(base, k*(1-f.grainAmount*n))
			}
			f.SetRGBA(x, y, c)
		}
	}
}

// Wall grain is sampled grainSize world units apart along a wall, and
// grainRows times up its height.
const (
	grainSize = 4.0
	grainRows = 6.0
)

// span returns the rows covered by a slice of the given height centered in a
// frame h pixels high.
func span(height float64, h int) (top, bot int) {
	top = int(math.Round((float64(h) - height) / 2))
	bot = int(math.Round((float64(h) + height) / 2))
	return moremath.ClampInt(top, 0, h), moremath.ClampInt(bot, 0, h)
}

// Sprite is a billboard standing on the floor, always facing the viewer.
type Sprite struct {
	Pos    geom.Vec
	Radius float64
	// Height is the sprite's height relative to a wall.
	Height float64
	Color  color.RGBA
}

// DrawSprite draws a sprite, seen from view v, behind anything already drawn
// closer in each pixel column. It returns false if no part of it was visible.
func (f *Frame) DrawSprite(v raycast.View, cfg raycast.Config, s Sprite) bool {
	w, h := f.Pixels()
	rel := s.Pos.Sub(v.Pos)
	dist := rel.Len()
	if dist <= s.Radius || w == 0 {
		return false
	}
	bearing := moremath.AngleDiff(v.Angle, rel.Angle())
	spread := math.Atan(s.Radius / dist)
	if math.Abs(bearing)-spread > cfg.FOV/2 {
		return false
	}
	corrected := raycast.Corrected(dist, v.Angle+bearing, v.Angle)
	wallH := cfg.WallHeight(corrected, h)
	height := wallH * s.Height
	_, floor := span(wallH, h)
	c := Scale(s.Color, cfg.Brightness(corrected))

	col := func(a float64) float64 { return (a + cfg.FOV/2) * float64(w) / cfg.FOV }
	x0 := col(bearing - spread)
	x1 := col(bearing + spread)
	drawn := false
	for x := moremath.MaxInt(0, int(math.Floor(x0))); x < w && float64(x) < x1; x++ {
		if f.depth[x] <= corrected {
			continue
		}
		// an upright ellipse
		dx := 2*(float64(x)+0.5-x0)/(x1-x0) - 1
		if dx < -1 || dx > 1 {
			continue
		}
		ph := height * math.Sqrt(1-dx*dx)
		mid := float64(floor) - height/2
		top := moremath.ClampInt(int(math.Round(mid-ph/2)), 0, h)
		bot := moremath.ClampInt(int(math.Round(mid+ph/2)), 0, h)
		for y := top; y < bot; y++ {
			f.SetRGBA(x, y, c)
			drawn = true
		}
	}
	return drawn
}
