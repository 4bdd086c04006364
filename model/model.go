/*
Package model drives training of an injected predictor over a prepared
dataset: it normalizes, partitions, runs the epoch loop and stops it when
the validation error plateaus.
*/
package model

import (
	"github.com/tjkessler/ECNet/data"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"path/filepath"
)

/*
Predictor is a trainable model abstraction.

How TrainOneEpoch updates internal parameters is the predictor's own
business; the package only requires that identical internal state and
identical inputs yield identical predictions, so error series stay
reproducible. A predictor is exclusively owned by one training run at a
time.
*/
type Predictor interface {
	// TrainOneEpoch fits the predictor's parameters to the given
	// learn rows for a single epoch
	TrainOneEpoch(inputs, outputs [][]float64)
	// Predict maps input rows to output rows
	Predict(inputs [][]float64) [][]float64
}

/*
TestMetrics are the final unbiased scores over the test subset
*/
type TestMetrics struct {
	RMSE    float64
	MeanAbs float64
	MedAbs  float64
	R2      float64
}

/*
Report is the result of one full training run
*/
type Report struct {
	Series []float64    // validation RMSE per completed epoch
	Reason State        // terminal state the convergence controller reached
	Epochs int          // completed epoch count
	Norms  data.Norms   // normalization parameters computed from the learn subset
	Test   *TestMetrics // nil when the test subset is empty
}

/*
LuckyRun trains a predictor and throws any occurred errors as a panic
*/
func (t Training) LuckyRun(p Predictor, ds data.Dataset) *Report {
	r, err := t.Run(p, ds)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

func Path(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("ecnet", "Models", s))
}
