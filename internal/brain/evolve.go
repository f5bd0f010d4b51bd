package brain

import (
	"math"
	"math/rand"
	"time"
)

// Evolver runs a (1+1) style search over a perceptron: each epoch it scores
// the current weights by the mean distance to the target, keeps them if they
// match or beat the best so far, otherwise reverts, then mutates again.
//
// An epoch cut short by a catch scores in [-1, 0), so any catch beats any
// epoch without one and a quicker catch beats a slower one.
//
// There is no training loop; fitness only comes from play.
type Evolver struct {
	Rate  float64
	Scale float64
	Epoch time.Duration

	rng  *rand.Rand
	cur  Perceptron
	best Perceptron

	bestScore float64
	gen       int

	elapsed time.Duration
	sum     float64
	samples int
}

// Generation is a report of a finished epoch.
type Generation struct {
	N        int
	Score    float64
	Best     float64
	Improved bool
	Mutated  int
}

// NewEvolver starts evolution from the given weights.
func NewEvolver(rng *rand.Rand, start Perceptron, rate, scale float64, epoch time.Duration) *Evolver {
	return &Evolver{
		Rate:      rate,
		Scale:     scale,
		Epoch:     epoch,
		rng:       rng,
		cur:       start,
		best:      start,
		bestScore: math.Inf(1),
	}
}

// Current returns the weights being evaluated.
func (ev *Evolver) Current() Perceptron { return ev.cur }

// Best returns the best weights found so far.
func (ev *Evolver) Best() Perceptron { return ev.best }

// BestScore returns the lowest epoch score seen, +Inf before the first
// epoch ends.
func (ev *Evolver) BestScore() float64 { return ev.bestScore }

// Gen returns the number of finished epochs.
func (ev *Evolver) Gen() int { return ev.gen }

// Observe records the distance to the target after dt has passed. When an
// epoch completes it returns the epoch report and true.
func (ev *Evolver) Observe(dist float64, dt time.Duration) (Generation, bool) {
	ev.sum += dist
	ev.samples++
	ev.elapsed += dt
	if ev.Epoch <= 0 || ev.elapsed < ev.Epoch {
		return Generation{}, false
	}
	return ev.advance(), true
}

// Caught ends the current epoch early because the target was reached. The
// score is the fraction of the epoch used, less one.
func (ev *Evolver) Caught() Generation {
	used := 0.0
	if ev.Epoch > 0 {
		used = math.Min(1, ev.elapsed.Seconds()/ev.Epoch.Seconds())
	}
	ev.sum, ev.samples = used-1, 1
	return ev.advance()
}

func (ev *Evolver) advance() Generation {
	score := ev.sum / float64(ev.samples)
	g := Generation{Score: score}
	if score <= ev.bestScore {
		ev.best, ev.bestScore = ev.cur, score
		g.Improved = true
	} else {
		ev.cur = ev.best
	}
	g.Mutated = ev.cur.Mutate(ev.rng, ev.Rate, ev.Scale)
	ev.gen++
	g.N, g.Best = ev.gen, ev.bestScore
	ev.elapsed, ev.sum, ev.samples = 0, 0, 0
	return g
}
