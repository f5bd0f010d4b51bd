// Package brain implements the enemy's tiny steering network and the
// mutate-and-keep-the-best loop that slowly improves it.
package brain

import (
	"math"
	"math/rand"
)

// Network shape: bearing sin, bearing cos, distance and bias in; thrust,
// strafe and turn out.
const (
	NumInputs  = 4
	NumOutputs = 3
	NumWeights = NumInputs * NumOutputs
)

// Inputs to the network. Bias should be left at 1.
type Inputs struct {
	BearingSin float64
	BearingCos float64
	Distance   float64
	Bias       float64
}

// NewInputs builds inputs for a target at the given bearing (radians,
// relative to the enemy's heading) and normalized distance.
func NewInputs(bearing, dist float64) Inputs {
	return Inputs{
		BearingSin: math.Sin(bearing),
		BearingCos: math.Cos(bearing),
		Distance:   dist,
		Bias:       1,
	}
}

func (in Inputs) vec() [NumInputs]float64 {
	return [NumInputs]float64{in.BearingSin, in.BearingCos, in.Distance, in.Bias}
}

// Outputs of the network, each in (-1, 1).
type Outputs struct {
	Thrust float64
	Strafe float64
	Turn   float64
}

// Perceptron is a single layer network with tanh activation and no hidden
// layer. Weights are stored output major.
type Perceptron struct {
	Weights [NumWeights]float64
}

// Seeker returns a perceptron hand wired to turn towards its target and push
// forward when it faces it, a reasonable starting point for evolution.
func Seeker() Perceptron {
	var p Perceptron
	p.set(0, 1, 1.5) // thrust from facing the target
	p.set(2, 0, 2)   // turn towards the target
	return p
}

// Random returns a perceptron with weights uniform in [-scale, scale].
func Random(rng *rand.Rand, scale float64) Perceptron {
	var p Perceptron
	for i := range p.Weights {
		p.Weights[i] = (2*rng.Float64() - 1) * scale
	}
	return p
}

func (p *Perceptron) set(out, in int, w float64) { p.Weights[out*NumInputs+in] = w }

// Forward evaluates the network.
func (p Perceptron) Forward(in Inputs) Outputs {
	x := in.vec()
	var y [NumOutputs]float64
	for o := range y {
		var sum float64
		for i, xi := range x {
			sum += p.Weights[o*NumInputs+i] * xi
		}
		y[o] = math.Tanh(sum)
	}
	return Outputs{Thrust: y[0], Strafe: y[1], Turn: y[2]}
}

// Mutate perturbs each weight, with probability rate, by a uniform amount in
// [-scale, scale]. It returns how many weights changed.
func (p *Perceptron) Mutate(rng *rand.Rand, rate, scale float64) int {
	n := 0
	for i := range p.Weights {
		if rng.Float64() < rate {
			p.Weights[i] += (2*rng.Float64() - 1) * scale
			n++
		}
	}
	return n
}
