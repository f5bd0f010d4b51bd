package brain

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerceptron_Forward(t *testing.T) {
	var zero Perceptron
	assert.Equal(t, Outputs{}, zero.Forward(NewInputs(1, 0.5)))

	p := Seeker()
	assert.Len(t, p.Weights, 12)
	for _, tc := range []struct {
		name    string
		bearing float64
		turn    func(float64) bool
	}{
		{"ahead", 0, func(v float64) bool { return v == 0 }},
		{"right", math.Pi / 2, func(v float64) bool { return v > 0.9 }},
		{"left", -math.Pi / 2, func(v float64) bool { return v < -0.9 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := p.Forward(NewInputs(tc.bearing, 0.5))
			assert.True(t, tc.turn(out.Turn), "turn %v", out.Turn)
			assert.True(t, math.Abs(out.Thrust) < 1)
		})
	}
	ahead := p.Forward(NewInputs(0, 1))
	behind := p.Forward(NewInputs(math.Pi, 1))
	assert.Greater(t, ahead.Thrust, 0.5)
	assert.Less(t, behind.Thrust, -0.5)
	assert.Equal(t, 2.0, p.Weights[2*NumInputs], "turn from bearing")
}

func TestPerceptron_Mutate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Random(rng, 1)
	for _, w := range p.Weights {
		assert.True(t, w >= -1 && w <= 1)
	}

	q := p
	assert.Equal(t, 0, q.Mutate(rng, 0, 1), "rate 0 never mutates")
	assert.Equal(t, p, q)

	assert.Equal(t, NumWeights, q.Mutate(rng, 1, 0.1))
	for i := range q.Weights {
		assert.InDelta(t, p.Weights[i], q.Weights[i], 0.1)
	}
	assert.NotEqual(t, p, q)
}

func TestEvolver(t *testing.T) {
	ev := NewEvolver(rand.New(rand.NewSource(7)), Seeker(), 1, 0.5, time.Second)
	start := ev.Current()
	assert.True(t, math.IsInf(ev.BestScore(), 1))

	_, done := ev.Observe(100, 500*time.Millisecond)
	assert.False(t, done)
	g, done := ev.Observe(50, 500*time.Millisecond)
	require.True(t, done)
	assert.Equal(t, Generation{N: 1, Score: 75, Best: 75, Improved: true, Mutated: NumWeights}, g)
	assert.Equal(t, start, ev.Best())
	mutant := ev.Current()
	assert.NotEqual(t, start, mutant)

	// a worse epoch reverts to the best before mutating again
	g, done = ev.Observe(200, time.Second)
	require.True(t, done)
	assert.False(t, g.Improved)
	assert.Equal(t, 75.0, g.Best)
	assert.Equal(t, start, ev.Best())

	// matching the best counts, so neutral mutations are kept
	tied := ev.Current()
	g, done = ev.Observe(75, time.Second)
	require.True(t, done)
	assert.True(t, g.Improved)
	assert.Equal(t, tied, ev.Best())
	assert.Equal(t, 3, ev.Gen())
}

func TestEvolver_Caught(t *testing.T) {
	ev := NewEvolver(rand.New(rand.NewSource(3)), Seeker(), 1, 0.5, time.Second)

	type step struct {
		name     string
		before   time.Duration
		score    float64
		improved bool
	}
	for i, st := range []step{
		{"first catch beats nothing", 400 * time.Millisecond, -0.6, true},
		{"quicker catch", 200 * time.Millisecond, -0.8, true},
		{"slower catch", 900 * time.Millisecond, -0.1, false},
		{"instant catch", 0, -1, true},
	} {
		cur, best := ev.Current(), ev.Best()
		if st.before > 0 {
			_, done := ev.Observe(1, st.before)
			require.False(t, done, st.name)
		}
		g := ev.Caught()
		assert.Equal(t, i+1, g.N, st.name)
		assert.InDelta(t, st.score, g.Score, 1e-9, st.name)
		assert.Equal(t, st.improved, g.Improved, st.name)
		if st.improved {
			assert.Equal(t, cur, ev.Best(), st.name)
			assert.InDelta(t, st.score, ev.BestScore(), 1e-9, st.name)
		} else {
			assert.Equal(t, best, ev.Best(), st.name)
		}
		assert.NotEqual(t, ev.Best(), ev.Current(), "%s: mutates again", st.name)
	}

	// distance epochs never displace a catch
	g, done := ev.Observe(0, time.Second)
	require.True(t, done)
	assert.False(t, g.Improved)
	assert.Equal(t, -1.0, ev.BestScore())
}

func TestEvolver_deterministic(t *testing.T) {
	run := func() Perceptron {
		ev := NewEvolver(rand.New(rand.NewSource(42)), Seeker(), 0.25, 0.5, 100*time.Millisecond)
		for i := 0; i < 50; i++ {
			ev.Observe(float64(i%7), 50*time.Millisecond)
		}
		return ev.Best()
	}
	assert.Equal(t, run(), run())
}
