package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/borkshop/corridor/internal/brain"
	"github.com/borkshop/corridor/internal/input"
	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/logger"
)

// Params tunes the simulation.
type Params struct {
	Speed        float64 // units per second
	SprintFactor float64
	TurnSpeed    float64 // radians per second
	Radius       float64

	Enemy EnemyParams
}

// EnemyParams tunes the enemy and its brain.
type EnemyParams struct {
	Enabled       bool
	Speed         float64
	TurnSpeed     float64
	Radius        float64
	MutationRate  float64
	MutationScale float64
	Epoch         time.Duration

	// RandomStart starts a fresh brain from random weights rather than
	// the hand wired seeker.
	RandomStart bool
}

// EventKind discriminates Events.
type EventKind uint8

// Event kinds.
const (
	// Caught means the enemy touched the player and was sent back to its
	// spawn.
	Caught EventKind = iota + 1
	// Evolved means the enemy brain finished an epoch.
	Evolved
	// Respawned means the player was put back at the level spawn.
	Respawned
)

func (k EventKind) String() string {
	switch k {
	case Caught:
		return "caught"
	case Evolved:
		return "evolved"
	case Respawned:
		return "respawned"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is something notable that happened during a Step.
type Event struct {
	Kind EventKind
	Time time.Duration
	Gen  brain.Generation
}

// World is the whole simulation state.
type World struct {
	Level  *level.Level
	Player Actor
	Enemy  *Enemy
	// Time is the total simulated time.
	Time time.Duration

	params Params
	rng    *rand.Rand
	log    *logrus.Entry
}

// NewWorld places the player, and the enemy if enabled and the level has a
// spawn for it, at their spawns.
func NewWorld(lvl *level.Level, params Params, rng *rand.Rand) *World {
	w := &World{
		Level:  lvl,
		params: params,
		rng:    rng,
		log:    logger.Component("game"),
	}
	w.Player.Radius = params.Radius
	w.Player.Place(lvl.Spawn)
	w.spawnEnemy(w.freshBrain())
	w.checkClearance()
	return w
}

func (w *World) freshBrain() brain.Perceptron {
	if w.params.Enemy.RandomStart {
		return brain.Random(w.rng, w.params.Enemy.MutationScale)
	}
	return brain.Seeker()
}

// checkClearance warns about spawns that start an actor overlapping a wall.
// Such actors can still move, but only away from it.
func (w *World) checkClearance() {
	var enemy float64
	if w.Enemy != nil {
		enemy = w.Enemy.Radius
	}
	if err := w.Level.CheckClearance(w.params.Radius, enemy); err != nil {
		w.log.WithError(err).Warn("cramped spawn")
	}
}

// Params returns the simulation parameters.
func (w *World) Params() Params { return w.params }

func (w *World) spawnEnemy(start brain.Perceptron) {
	w.Enemy = nil
	if !w.params.Enemy.Enabled || w.Level.Enemy == nil {
		return
	}
	ep := w.params.Enemy
	w.Enemy = &Enemy{
		Actor: Actor{Radius: ep.Radius},
		Spawn: *w.Level.Enemy,
		Brain: brain.NewEvolver(w.rng, start, ep.MutationRate, ep.MutationScale, ep.Epoch),
	}
	w.Enemy.Place(w.Enemy.Spawn)
}

// Move applies a movement intent to the player over dt.
func (w *World) Move(in input.Intent, dt time.Duration) {
	secs := dt.Seconds()
	w.Player.Turn(in.Yaw + in.Turn*w.params.TurnSpeed*secs)
	speed := w.params.Speed
	if in.Sprint {
		speed *= w.params.SprintFactor
	}
	delta := w.Player.Heading().Mul(in.Forward).Add(w.Player.Right().Mul(in.Strafe))
	if l := delta.Len(); l > 1 {
		delta = delta.Mul(1 / l)
	}
	slide(w.Level, &w.Player, delta.Mul(speed*secs))
}

// Step advances the simulation by dt, returning anything notable that
// happened.
func (w *World) Step(dt time.Duration, in input.Intent) []Event {
	w.Time += dt
	w.Move(in, dt)
	if w.Enemy == nil {
		return nil
	}

	var events []Event
	w.Enemy.steer(w.Level, w.Player.Pos, w.scale(), w.params.Enemy, dt)
	dist := w.Enemy.Pos.DistanceTo(w.Player.Pos)
	if dist < w.Enemy.Radius+w.Player.Radius {
		g := w.Enemy.Brain.Caught()
		w.Enemy.Place(w.Enemy.Spawn)
		w.Enemy.Catches++
		w.log.WithFields(logrus.Fields{
			"catches": w.Enemy.Catches,
			"gen":     g.N,
		}).Info("caught by the hunter")
		return append(events,
			Event{Kind: Caught, Time: w.Time, Gen: g},
			Event{Kind: Evolved, Time: w.Time, Gen: g})
	}
	if g, done := w.Enemy.Brain.Observe(dist/w.scale(), dt); done {
		w.log.WithFields(logrus.Fields{
			"gen":      g.N,
			"score":    g.Score,
			"best":     g.Best,
			"improved": g.Improved,
		}).Debug("enemy epoch")
		events = append(events, Event{Kind: Evolved, Time: w.Time, Gen: g})
	}
	return events
}

// scale is the distance used to normalize enemy inputs and scores: the
// level's diagonal.
func (w *World) scale() float64 {
	if d := w.Level.Bounds.Size().Len(); d > 0 {
		return d
	}
	return 1
}

// Reset puts the player back at the level spawn and restarts the enemy from
// its best weights.
func (w *World) Reset() Event {
	w.Player.Place(w.Level.Spawn)
	if w.Enemy != nil {
		w.spawnEnemy(w.Enemy.Brain.Best())
	}
	w.log.Info("reset")
	return Event{Kind: Respawned, Time: w.Time}
}

// Reload swaps in a new level, as after its file changed on disk. Actors keep
// their positions unless those are now outside the level or inside a wall,
// in which case they go back to their spawn.
func (w *World) Reload(lvl *level.Level) []Event {
	w.Level = lvl
	var events []Event
	if !w.placeable(w.Player) {
		w.Player.Place(lvl.Spawn)
		events = append(events, Event{Kind: Respawned, Time: w.Time})
	}

	switch {
	case lvl.Enemy == nil || !w.params.Enemy.Enabled:
		w.Enemy = nil
	case w.Enemy == nil:
		w.spawnEnemy(w.freshBrain())
	default:
		w.Enemy.Spawn = *lvl.Enemy
		if !w.placeable(w.Enemy.Actor) {
			w.Enemy.Place(w.Enemy.Spawn)
		}
	}

	w.log.WithFields(logrus.Fields{
		"level":     lvl.Name,
		"walls":     len(lvl.Walls),
		"obstacles": len(lvl.Obstacles),
		"respawned": len(events) > 0,
	}).Info("level reloaded")
	w.checkClearance()
	return events
}

func (w *World) placeable(a Actor) bool {
	return w.Level.Bounds.Contains(a.Pos) && !w.Level.Collides(a.Pos, a.Radius)
}
