package game

import (
	"time"

	"github.com/borkshop/corridor/internal/brain"
	"github.com/borkshop/corridor/internal/geom"
	"github.com/borkshop/corridor/internal/level"
)

// Enemy is an actor that hunts the player using an evolving perceptron.
type Enemy struct {
	Actor
	Spawn   level.Spawn
	Brain   *brain.Evolver
	Catches int

	// Last is the most recent network output, kept for display.
	Last brain.Outputs
}

// steer runs the brain once and moves the enemy by its outputs; distances are
// normalized by scale.
func (en *Enemy) steer(lvl *level.Level, target geom.Vec, scale float64, ep EnemyParams, dt time.Duration) {
	in := brain.NewInputs(en.Bearing(target), en.Pos.DistanceTo(target)/scale)
	out := en.Brain.Current().Forward(in)
	en.Last = out

	secs := dt.Seconds()
	en.Turn(out.Turn * ep.TurnSpeed * secs)
	delta := en.Heading().Mul(out.Thrust).Add(en.Right().Mul(out.Strafe))
	if l := delta.Len(); l > 1 {
		delta = delta.Mul(1 / l)
	}
	slide(lvl, &en.Actor, delta.Mul(ep.Speed*secs))
}
