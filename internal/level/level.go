// Package level describes the maps a viewer walks around in: line segment
// walls, box obstacles, and where the player and the enemy start.
package level

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/borkshop/corridor/internal/geom"
)

// Color is an opaque wall color.
type Color color.RGBA

// RGBA returns the color as a color.RGBA.
func (c Color) RGBA() color.RGBA { return color.RGBA(c) }

// Hex renders the color as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// ParseColor parses a #rrggbb color.
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) != 7 || s[0] != '#' {
		return c, errors.Errorf("invalid color %q, want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, errors.Wrapf(err, "invalid color %q", s)
	}
	c.A = 0xff
	return c, nil
}

// Default colors for walls and obstacles that don't name one.
var (
	DefaultWallColor     = Color{0x9a, 0x9a, 0xa8, 0xff}
	DefaultObstacleColor = Color{0xb0, 0x50, 0x3a, 0xff}
)

// Wall is a colored wall segment.
type Wall struct {
	geom.Segment
	Color Color
}

// Obstacle is a colored solid box.
type Obstacle struct {
	geom.Box
	Color Color
}

// Spawn is a starting position and heading.
type Spawn struct {
	Pos   geom.Vec
	Angle float64
}

// Level is a loaded map. Treat it as immutable once built.
type Level struct {
	Name      string
	Bounds    geom.Box
	Spawn     Spawn
	Enemy     *Spawn
	Walls     []Wall
	Obstacles []Obstacle

	surfaces []geom.Segment
	colors   []Color
}

// New builds a level from its parts, deriving the bounds and the surfaces
// seen by the raycaster.
func New(name string, spawn Spawn, enemy *Spawn, walls []Wall, obstacles []Obstacle) *Level {
	lvl := &Level{
		Name:      name,
		Spawn:     spawn,
		Enemy:     enemy,
		Walls:     walls,
		Obstacles: obstacles,
	}
	lvl.build()
	return lvl
}

func (lvl *Level) build() {
	var bounds geom.Box
	have := false
	expand := func(ps ...geom.Vec) {
		for _, p := range ps {
			if !have {
				bounds, have = geom.Box{Min: p, Max: p}, true
			}
			bounds = bounds.ExpandTo(p)
		}
	}
	n := len(lvl.Walls) + 4*len(lvl.Obstacles)
	lvl.surfaces = make([]geom.Segment, 0, n)
	lvl.colors = make([]Color, 0, n)
	for _, w := range lvl.Walls {
		expand(w.A, w.B)
		lvl.surfaces = append(lvl.surfaces, w.Segment)
		lvl.colors = append(lvl.colors, w.Color)
	}
	for _, o := range lvl.Obstacles {
		expand(o.Min, o.Max)
		for _, e := range o.Edges() {
			lvl.surfaces = append(lvl.surfaces, e)
			lvl.colors = append(lvl.colors, o.Color)
		}
	}
	lvl.Bounds = bounds
}

// Surfaces returns every segment a ray can hit: the walls, then the four
// edges of each obstacle. The slice is shared; do not modify it.
func (lvl *Level) Surfaces() []geom.Segment { return lvl.surfaces }

// SurfaceColor returns the color of the i-th surface.
func (lvl *Level) SurfaceColor(i int) Color {
	if i < 0 || i >= len(lvl.colors) {
		return DefaultWallColor
	}
	return lvl.colors[i]
}

// Collides returns true if a circle at p with radius r touches any wall or
// obstacle.
func (lvl *Level) Collides(p geom.Vec, r float64) bool {
	for _, w := range lvl.Walls {
		if d, _ := w.DistanceTo(p); d < r {
			return true
		}
	}
	for _, o := range lvl.Obstacles {
		if o.IntersectsCircle(p, r) {
			return true
		}
	}
	return false
}

// Clearance returns the distance from p to the nearest wall or obstacle, 0
// if p is inside an obstacle and +Inf if the level is empty.
func (lvl *Level) Clearance(p geom.Vec) float64 {
	d := math.Inf(1)
	for _, w := range lvl.Walls {
		if wd, _ := w.DistanceTo(p); wd < d {
			d = wd
		}
	}
	for _, o := range lvl.Obstacles {
		if od := o.ClosestPoint(p).DistanceTo(p); od < d {
			d = od
		}
	}
	return d
}

// CheckClearance returns a *ValidationError if the player or enemy spawn is
// closer to a wall or obstacle than the given radius of the actor started
// there. Validate can't check this since radii are not part of a level.
func (lvl *Level) CheckClearance(player, enemy float64) error {
	ve := &ValidationError{Level: lvl.Name}
	check := func(what string, s Spawn, r float64) {
		if c := lvl.Clearance(s.Pos); c < r {
			ve.Problems = append(ve.Problems, fmt.Sprintf(
				"%s spawn %v is %.3g from a wall, closer than its radius %v", what, s.Pos, c, r))
		}
	}
	check("player", lvl.Spawn, player)
	if lvl.Enemy != nil {
		check("enemy", *lvl.Enemy, enemy)
	}
	if len(ve.Problems) > 0 {
		return ve
	}
	return nil
}

// ValidationError lists everything wrong with a level.
type ValidationError struct {
	Level    string
	Problems []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("level %q: %s", ve.Level, strings.Join(ve.Problems, "; "))
}

// Validate checks the level for degenerate geometry and bad spawns, returning
// a *ValidationError if anything is wrong.
func (lvl *Level) Validate() error {
	ve := &ValidationError{Level: lvl.Name}
	fail := func(mess string, args ...interface{}) {
		ve.Problems = append(ve.Problems, fmt.Sprintf(mess, args...))
	}
	if len(lvl.surfaces) == 0 {
		fail("no walls or obstacles")
	}
	for i, w := range lvl.Walls {
		if !(w.Len() > 0) {
			fail("wall %d has zero length", i)
		}
	}
	for i, o := range lvl.Obstacles {
		if o.Empty() {
			fail("obstacle %d has no area", i)
		}
	}
	check := func(what string, s Spawn) {
		if math.IsNaN(s.Pos.X) || math.IsNaN(s.Pos.Y) {
			fail("%s spawn is not a number", what)
			return
		}
		if !lvl.Bounds.Contains(s.Pos) {
			fail("%s spawn %v outside %v", what, s.Pos, lvl.Bounds)
		}
		for i, o := range lvl.Obstacles {
			if o.Contains(s.Pos) {
				fail("%s spawn %v inside obstacle %d", what, s.Pos, i)
			}
		}
	}
	check("player", lvl.Spawn)
	if lvl.Enemy != nil {
		check("enemy", *lvl.Enemy)
	}
	if len(ve.Problems) > 0 {
		return ve
	}
	return nil
}
