package model

import (
	"github.com/tjkessler/ECNet/fu"
	"go-ml.dev/pkg/zorros/zlog"
	"math"
)

/*
State is the convergence controller's training-loop state
*/
type State int

const (
	Running State = iota
	Converged
	MaxEpochsReached
)

func (s State) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxEpochsReached:
		return "max epochs reached"
	}
	return "running"
}

const (
	DefaultMemory        = 250
	DefaultStopThreshold = 1e-5
	DefaultMaxEpochs     = 10000
)

/*
Convergence decides when an iterative training loop should stop.

It watches the validation RMSE observed after each epoch and keeps the
mean of absolute epoch-to-epoch deltas over a trailing window of the last
`memory` epochs (mdrmse). Once that smoothed rate of change drops below
the stop threshold the learning has plateaued and the controller turns
Converged; if the epoch budget runs out first it turns MaxEpochsReached.
Both states are terminal, so callers can tell a plateau from an exhausted
budget.
*/
type Convergence struct {
	memory    int
	threshold float64
	maxEpochs int

	series []float64
	deltas []float64 // ring of the last `memory` absolute deltas
	dsum   float64
	di, dn int
	last   float64
	state  State
}

/*
NewConvergence creates a controller; zero arguments take the package
defaults
*/
func NewConvergence(memory int, stopThreshold float64, maxEpochs int) *Convergence {
	memory = fu.Fnzi(memory, DefaultMemory)
	stopThreshold = fu.Fnzd(stopThreshold, DefaultStopThreshold)
	maxEpochs = fu.Fnzi(maxEpochs, DefaultMaxEpochs)
	return &Convergence{
		memory:    memory,
		threshold: stopThreshold,
		maxEpochs: maxEpochs,
		deltas:    make([]float64, memory),
	}
}

/*
Step records the validation RMSE of a just-completed epoch and returns
the resulting state. Stepping a finished controller is a no-op.
*/
func (c *Convergence) Step(rmse float64) State {
	if c.state != Running {
		zlog.Warning("convergence controller is already terminal")
		return c.state
	}
	if len(c.series) > 0 {
		d := math.Abs(rmse - c.last)
		if c.dn == c.memory {
			c.dsum -= c.deltas[c.di]
		} else {
			c.dn++
		}
		c.deltas[c.di] = d
		c.dsum += d
		c.di = (c.di + 1) % c.memory
	}
	c.series = append(c.series, rmse)
	c.last = rmse
	if c.dn == c.memory && c.dsum/float64(c.memory) < c.threshold {
		c.state = Converged
	} else if len(c.series) >= c.maxEpochs {
		c.state = MaxEpochsReached
	}
	return c.state
}

func (c *Convergence) State() State { return c.state }

// Epoch is the count of completed epochs observed so far
func (c *Convergence) Epoch() int { return len(c.series) }

/*
Mdrmse is the current mean of absolute epoch-to-epoch RMSE deltas over
the trailing window; NaN while the series is too short to fill it
*/
func (c *Convergence) Mdrmse() float64 {
	if c.dn < c.memory {
		return math.NaN()
	}
	return c.dsum / float64(c.memory)
}

// Series returns a copy of the error series recorded so far
func (c *Convergence) Series() []float64 {
	return append([]float64{}, c.series...)
}
