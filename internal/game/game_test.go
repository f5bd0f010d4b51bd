package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borkshop/corridor/internal/brain"
	"github.com/borkshop/corridor/internal/geom"
	"github.com/borkshop/corridor/internal/input"
	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/logger"
)

func room(enemy *level.Spawn, obstacles ...level.Obstacle) *level.Level {
	return level.New("room", level.Spawn{Pos: geom.V(50, 100)}, enemy, []level.Wall{
		{Segment: geom.Seg(0, 0, 200, 0)},
		{Segment: geom.Seg(200, 0, 200, 200)},
		{Segment: geom.Seg(200, 200, 0, 200)},
		{Segment: geom.Seg(0, 200, 0, 0)},
	}, obstacles)
}

var testParams = Params{
	Speed:        10,
	SprintFactor: 2,
	TurnSpeed:    2,
	Radius:       5,
	Enemy: EnemyParams{
		Enabled:       true,
		Speed:         20,
		TurnSpeed:     3,
		Radius:        5,
		MutationRate:  0.5,
		MutationScale: 0.5,
		Epoch:         time.Hour,
	},
}

func newWorld(lvl *level.Level, params Params) *World {
	return NewWorld(lvl, params, rand.New(rand.NewSource(1)))
}

func TestWorld_Move(t *testing.T) {
	for _, tc := range []struct {
		name     string
		angle    float64
		in       input.Intent
		expected geom.Vec
	}{
		{"idle", 0, input.Intent{}, geom.V(50, 100)},
		{"forward", 0, input.Intent{Forward: 1}, geom.V(60, 100)},
		{"back", 0, input.Intent{Forward: -1}, geom.V(40, 100)},
		{"sprint", 0, input.Intent{Forward: 1, Sprint: true}, geom.V(70, 100)},
		{"strafe right", 0, input.Intent{Strafe: 1}, geom.V(50, 110)},
		{"forward facing down", math.Pi / 2, input.Intent{Forward: 1}, geom.V(50, 110)},
		{"diagonal is not faster", 0, input.Intent{Forward: 1, Strafe: -1},
			geom.V(50+10/math.Sqrt2, 100-10/math.Sqrt2)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(room(nil), testParams)
			w.Player.Angle = tc.angle
			w.Move(tc.in, time.Second)
			assert.InDelta(t, tc.expected.X, w.Player.Pos.X, 1e-9)
			assert.InDelta(t, tc.expected.Y, w.Player.Pos.Y, 1e-9)
		})
	}
}

func TestWorld_Move_turn(t *testing.T) {
	w := newWorld(room(nil), testParams)
	w.Move(input.Intent{Turn: 1}, 500*time.Millisecond)
	assert.InDelta(t, 1, w.Player.Angle, 1e-9)
	w.Move(input.Intent{Turn: -1, Yaw: -0.5}, time.Second)
	assert.InDelta(t, 2*math.Pi-1.5, w.Player.Angle, 1e-9, "wrapped")
}

func TestWorld_Move_slides(t *testing.T) {
	w := newWorld(room(nil), testParams)
	w.Player.Pos = geom.V(190, 100)
	w.Player.Angle = math.Pi / 4
	w.Move(input.Intent{Forward: 1}, 2*time.Second)
	assert.LessOrEqual(t, w.Player.Pos.X, 195.0, "stopped by the wall")
	assert.Greater(t, w.Player.Pos.X, 190.0)
	assert.InDelta(t, 100+20/math.Sqrt2, w.Player.Pos.Y, 1e-9, "slid along it")
}

func TestWorld_Move_noTunneling(t *testing.T) {
	w := newWorld(room(nil, level.Obstacle{Box: geom.Bx(80, 90, 4, 20)}), testParams)
	w.Move(input.Intent{Forward: 1}, time.Minute)
	assert.Less(t, w.Player.Pos.X, 80.0)
	assert.False(t, w.Level.Collides(w.Player.Pos, w.Player.Radius))
}

func TestWorld_Move_outOfOverlap(t *testing.T) {
	cramped := func() *level.Level {
		return level.New("cramped", level.Spawn{Pos: geom.V(3, 100)}, nil, []level.Wall{
			{Segment: geom.Seg(0, 0, 200, 0)},
			{Segment: geom.Seg(200, 0, 200, 200)},
			{Segment: geom.Seg(200, 200, 0, 200)},
			{Segment: geom.Seg(0, 200, 0, 0)},
		}, nil)
	}
	for _, tc := range []struct {
		name  string
		angle float64
		in    input.Intent
		check func(t *testing.T, p geom.Vec)
	}{
		{"walks away", 0, input.Intent{Forward: 1}, func(t *testing.T, p geom.Vec) {
			assert.Greater(t, p.X, 50.0)
		}},
		{"backs away", math.Pi, input.Intent{Forward: -1}, func(t *testing.T, p geom.Vec) {
			assert.Greater(t, p.X, 50.0)
		}},
		{"slides along", 0, input.Intent{Strafe: 1}, func(t *testing.T, p geom.Vec) {
			assert.InDelta(t, 3, p.X, 1e-9)
			assert.Greater(t, p.Y, 100.0)
		}},
		{"can't push further in", math.Pi, input.Intent{Forward: 1}, func(t *testing.T, p geom.Vec) {
			assert.Equal(t, geom.V(3, 100), p)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hook := logtest.NewLocal(logger.Log)
			defer hook.Reset()

			w := newWorld(cramped(), testParams)
			require.Equal(t, geom.V(3, 100), w.Player.Pos)
			if entry := hook.LastEntry(); assert.NotNil(t, entry) {
				assert.Equal(t, logrus.WarnLevel, entry.Level)
				assert.Equal(t, "cramped spawn", entry.Message)
			}

			w.Player.Angle = tc.angle
			for i := 0; i < 100; i++ {
				w.Step(50*time.Millisecond, tc.in)
			}
			tc.check(t, w.Player.Pos)
		})
	}
}

func TestWorld_enemy(t *testing.T) {
	w := newWorld(room(&level.Spawn{Pos: geom.V(150, 100), Angle: math.Pi}), testParams)
	require.NotNil(t, w.Enemy)
	assert.Equal(t, geom.V(150, 100), w.Enemy.Pos)

	d0 := w.Enemy.Pos.DistanceTo(w.Player.Pos)
	for i := 0; i < 10; i++ {
		assert.Empty(t, w.Step(50*time.Millisecond, input.Intent{}))
	}
	assert.Less(t, w.Enemy.Pos.DistanceTo(w.Player.Pos), d0, "the seeker closes in")
	assert.Equal(t, 500*time.Millisecond, w.Time)

	w.Enemy.Pos = geom.V(58, 100)
	events := w.Step(time.Millisecond, input.Intent{})
	require.Len(t, events, 2)
	assert.Equal(t, Caught, events[0].Kind)
	assert.Equal(t, Evolved, events[1].Kind)
	assert.Equal(t, 1, events[0].Gen.N)
	assert.Equal(t, geom.V(150, 100), w.Enemy.Pos, "sent home")
	assert.Equal(t, 1, w.Enemy.Catches)
}

func TestWorld_enemyCatchesAgain(t *testing.T) {
	w := newWorld(room(&level.Spawn{Pos: geom.V(150, 100), Angle: math.Pi}), testParams)
	require.NotNil(t, w.Enemy)

	var bests []brain.Perceptron
	for _, before := range []time.Duration{time.Second, 0} {
		w.Step(before, input.Intent{})
		tried := w.Enemy.Brain.Current()
		w.Enemy.Pos = geom.V(58, 100)
		events := w.Step(time.Millisecond, input.Intent{})
		require.Len(t, events, 2)
		assert.True(t, events[0].Gen.Improved, "a quicker catch ranks higher")
		assert.Equal(t, tried, w.Enemy.Brain.Best())
		bests = append(bests, w.Enemy.Brain.Best())
	}
	assert.NotEqual(t, bests[0], bests[1], "the second catcher replaced the first")
	assert.Equal(t, 2, w.Enemy.Catches)
}

func TestWorld_randomStart(t *testing.T) {
	params := testParams
	params.Enemy.RandomStart = true
	w := newWorld(room(&level.Spawn{Pos: geom.V(150, 150)}), params)
	require.NotNil(t, w.Enemy)
	start := w.Enemy.Brain.Current()
	assert.NotEqual(t, brain.Seeker(), start)
	for _, wt := range start.Weights {
		assert.True(t, math.Abs(wt) <= params.Enemy.MutationScale, "weight %v", wt)
	}
}

func TestWorld_enemyEvolves(t *testing.T) {
	params := testParams
	params.Enemy.Epoch = 100 * time.Millisecond
	w := newWorld(room(&level.Spawn{Pos: geom.V(150, 150)}), params)

	var evolved []Event
	for i := 0; i < 10; i++ {
		for _, ev := range w.Step(50*time.Millisecond, input.Intent{}) {
			if ev.Kind == Evolved {
				evolved = append(evolved, ev)
			}
		}
	}
	require.Len(t, evolved, 5)
	assert.Equal(t, 5, evolved[4].Gen.N)
	assert.Equal(t, 5, w.Enemy.Brain.Gen())
}

func TestWorld_enemyDisabled(t *testing.T) {
	params := testParams
	params.Enemy.Enabled = false
	w := newWorld(room(&level.Spawn{Pos: geom.V(150, 150)}), params)
	assert.Nil(t, w.Enemy)
	assert.Nil(t, w.Step(time.Second, input.Intent{Forward: 1}))

	w = newWorld(room(nil), testParams)
	assert.Nil(t, w.Enemy, "no enemy spawn")
}

func TestWorld_Reload(t *testing.T) {
	w := newWorld(room(&level.Spawn{Pos: geom.V(150, 150)}), testParams)
	w.Player.Pos = geom.V(120, 40)

	// still valid
	assert.Empty(t, w.Reload(room(&level.Spawn{Pos: geom.V(150, 150)})))
	assert.Equal(t, geom.V(120, 40), w.Player.Pos)
	require.NotNil(t, w.Enemy)

	// a crate dropped on the player
	events := w.Reload(room(nil, level.Obstacle{Box: geom.Bx(110, 30, 20, 20)}))
	require.Len(t, events, 1)
	assert.Equal(t, Respawned, events[0].Kind)
	assert.Equal(t, geom.V(50, 100), w.Player.Pos)
	assert.Nil(t, w.Enemy, "new level has no enemy")

	w.Reload(room(&level.Spawn{Pos: geom.V(160, 160)}))
	require.NotNil(t, w.Enemy)
	assert.Equal(t, geom.V(160, 160), w.Enemy.Pos)

	hook := logtest.NewLocal(logger.Log)
	defer hook.Reset()
	w.Reload(room(&level.Spawn{Pos: geom.V(160, 197)}))
	if entry := hook.LastEntry(); assert.NotNil(t, entry) {
		assert.Equal(t, "cramped spawn", entry.Message)
		assert.Contains(t, entry.Data[logrus.ErrorKey].(error).Error(), "enemy spawn")
	}
}

func TestWorld_Reset(t *testing.T) {
	w := newWorld(room(&level.Spawn{Pos: geom.V(150, 150)}), testParams)
	w.Step(time.Second, input.Intent{Forward: 1})
	require.NotEqual(t, geom.V(50, 100), w.Player.Pos)

	ev := w.Reset()
	assert.Equal(t, Respawned, ev.Kind)
	assert.Equal(t, geom.V(50, 100), w.Player.Pos)
	assert.Equal(t, geom.V(150, 150), w.Enemy.Pos)
	assert.Equal(t, "respawned", Respawned.String())
}

func TestActor_Bearing(t *testing.T) {
	a := Actor{Pos: geom.V(0, 0), Angle: 0}
	assert.InDelta(t, 0, a.Bearing(geom.V(10, 0)), 1e-9)
	assert.InDelta(t, math.Pi/2, a.Bearing(geom.V(0, 10)), 1e-9)
	assert.InDelta(t, -math.Pi/2, a.Bearing(geom.V(0, -10)), 1e-9)
	assert.InDelta(t, 1, a.Right().Y, 1e-9)
}
