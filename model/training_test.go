package model

import (
	"context"
	"github.com/tjkessler/ECNet/data"
	"github.com/tjkessler/ECNet/fu"
	"gotest.tools/assert"
	"math"
	"strconv"
	"strings"
	"testing"
)

// meanPredictor converges on the mean of the learn outputs; deterministic
// and ignorant of its inputs, which keeps loop behavior easy to reason about
type meanPredictor struct {
	c float64
}

func (p *meanPredictor) TrainOneEpoch(inputs, outputs [][]float64) {
	p.c += (fu.Mean(fu.Flatnr(outputs)) - p.c) * 0.5
}

func (p *meanPredictor) Predict(inputs [][]float64) [][]float64 {
	r := make([][]float64, len(inputs))
	for i := range r {
		r[i] = []float64{p.c}
	}
	return r
}

func trainTestDataset(n int) data.Dataset {
	ds := data.Dataset{InputNames: []string{"a", "b", "c"}, OutputNames: []string{"y"}}
	for i := 0; i < n; i++ {
		x := float64(i)
		ds.Rows = append(ds.Rows, data.Row{
			ID:      strconv.Itoa(i),
			Inputs:  []float64{x, x * x, 100 - x},
			Outputs: []float64{3*x + 1},
		})
	}
	return ds
}

func Test_RunConverges(t *testing.T) {
	tr := Training{
		Split:         data.SplitRatio{Learn: 0.7, Validation: 0.2, Test: 0.1},
		Seed:          42,
		Memory:        4,
		StopThreshold: 1e-6,
		MaxEpochs:     1000,
	}
	report, err := tr.Run(&meanPredictor{}, trainTestDataset(100))
	assert.NilError(t, err)
	assert.Assert(t, report.Reason == Converged)
	assert.Assert(t, report.Epochs == len(report.Series))
	assert.Assert(t, report.Epochs < 1000)
	assert.Assert(t, report.Test != nil)
	assert.Assert(t, report.Test.RMSE > 0)
	assert.Assert(t, len(report.Norms.Ranges) == 3)
	// normalization parameters come from the learn subset only,
	// so the full column span can exceed the recorded range
	r := report.Norms.Ranges["a"]
	assert.Assert(t, r.Max-r.Min <= 99)
}

func Test_RunReproducible(t *testing.T) {
	tr := Training{Seed: 42, Memory: 4, StopThreshold: 1e-6, MaxEpochs: 1000}
	a, err := tr.Run(&meanPredictor{}, trainTestDataset(100))
	assert.NilError(t, err)
	b, err := tr.Run(&meanPredictor{}, trainTestDataset(100))
	assert.NilError(t, err)
	assert.DeepEqual(t, a.Series, b.Series)
	assert.Assert(t, a.Reason == b.Reason)
	assert.Assert(t, a.Epochs == b.Epochs)
}

func Test_RunExplicitAssignments(t *testing.T) {
	ds := trainTestDataset(10)
	for i := range ds.Rows {
		switch {
		case i < 6:
			ds.Rows[i].Assignment = data.Learn
		case i < 8:
			ds.Rows[i].Assignment = data.Validation
		default:
			ds.Rows[i].Assignment = data.Test
		}
	}
	tr := Training{Memory: 3, StopThreshold: 1e-6, MaxEpochs: 500}
	report, err := tr.Run(&meanPredictor{}, ds)
	assert.NilError(t, err)
	assert.Assert(t, report.Reason == Converged)
	assert.Assert(t, report.Test != nil)
}

func Test_RunMaxEpochs(t *testing.T) {
	tr := Training{Seed: 1, Memory: 4, StopThreshold: 0.0, MaxEpochs: 7}
	// threshold zero defaults, so force a tiny budget instead
	tr.StopThreshold = 1e-300
	report, err := tr.Run(&meanPredictor{}, trainTestDataset(50))
	assert.NilError(t, err)
	assert.Assert(t, report.Reason == MaxEpochsReached)
	assert.Assert(t, report.Epochs == 7)
}

func Test_RunVerbose(t *testing.T) {
	var lines []string
	tr := Training{
		Seed: 42, Memory: 3, StopThreshold: 1e-6, MaxEpochs: 100,
		Verbose: func(s string) { lines = append(lines, s) },
	}
	report, err := tr.Run(&meanPredictor{}, trainTestDataset(40))
	assert.NilError(t, err)
	assert.Assert(t, len(lines) == report.Epochs)
	assert.Assert(t, strings.Contains(lines[0], "rmse:"))
}

func Test_RunAborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := Training{Seed: 42, Context: ctx}
	report, err := tr.Run(&meanPredictor{}, trainTestDataset(40))
	assert.Assert(t, err != nil)
	assert.Assert(t, report != nil)
	assert.Assert(t, report.Epochs == 0)
}

func Test_RunEmptyDataset(t *testing.T) {
	_, err := Training{}.Run(&meanPredictor{}, data.Dataset{})
	assert.Assert(t, err != nil)
}

func Test_RunSeriesDecreases(t *testing.T) {
	tr := Training{Seed: 3, Memory: 4, StopThreshold: 1e-6, MaxEpochs: 1000}
	report, err := tr.Run(&meanPredictor{}, trainTestDataset(100))
	assert.NilError(t, err)
	first, last := report.Series[0], report.Series[len(report.Series)-1]
	assert.Assert(t, last < first || math.Abs(last-first) < 1e-9)
}
