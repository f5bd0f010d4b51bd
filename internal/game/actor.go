package game

import (
	"math"

	"github.com/borkshop/corridor/internal/geom"
	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/moremath"
)

// Actor is anything that moves around a level as a circle.
type Actor struct {
	Pos    geom.Vec
	Angle  float64
	Radius float64
}

// Heading returns the unit vector the actor faces.
func (a Actor) Heading() geom.Vec { return geom.FromAngle(a.Angle) }

// Right returns the unit vector to the actor's right (clockwise from its
// heading in screen coordinates).
func (a Actor) Right() geom.Vec { return a.Heading().Perp() }

// Turn rotates the actor, keeping its angle in [0, 2π).
func (a *Actor) Turn(da float64) { a.Angle = moremath.WrapAngle(a.Angle + da) }

// Place moves the actor to a spawn point.
func (a *Actor) Place(s level.Spawn) {
	a.Pos = s.Pos
	a.Angle = moremath.WrapAngle(s.Angle)
}

// Bearing returns the angle to p relative to the actor's heading, in
// (-π, π]; positive is clockwise.
func (a Actor) Bearing(p geom.Vec) float64 {
	return moremath.AngleDiff(a.Angle, p.Sub(a.Pos).Angle())
}

// slide moves an actor by delta, one axis at a time, dropping any axis whose
// move would leave the level or bring it closer to a wall it overlaps. This
// lets an actor slide along a wall it walks into at an angle, and walk out
// of one it was placed against. Long moves are taken in sub-steps of at
// most half the radius so that nothing tunnels through a wall. It returns
// the displacement applied.
func slide(lvl *level.Level, a *Actor, delta geom.Vec) geom.Vec {
	start := a.Pos
	free := func(p geom.Vec) bool {
		if !lvl.Bounds.Contains(p) {
			return false
		}
		c := lvl.Clearance(p)
		return c >= a.Radius || c >= lvl.Clearance(a.Pos)
	}
	n := 1
	if max := a.Radius / 2; max > 0 {
		n = int(math.Ceil(delta.Len() / max))
	}
	if n < 1 {
		n = 1
	}
	step := delta.Mul(1 / float64(n))
	for i := 0; i < n; i++ {
		moved := false
		if step.X != 0 {
			if p := geom.V(a.Pos.X+step.X, a.Pos.Y); free(p) {
				a.Pos, moved = p, true
			}
		}
		if step.Y != 0 {
			if p := geom.V(a.Pos.X, a.Pos.Y+step.Y); free(p) {
				a.Pos, moved = p, true
			}
		}
		if !moved {
			break
		}
	}
	return a.Pos.Sub(start)
}
