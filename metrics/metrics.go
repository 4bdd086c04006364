/*
Package metrics implements pure error metrics over (predicted, actual) pairs.

All functions are side-effect free and safely reusable by reporting code.
*/
package metrics

import (
	"github.com/tjkessler/ECNet/fu"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat"
	"math"
)

var (
	// ErrDimensionMismatch means predicted and actual sequences differ in length
	ErrDimensionMismatch = xerrors.New("dimension mismatch")
	// ErrEmptyInput means a metric was requested over zero values
	ErrEmptyInput = xerrors.New("empty input")
	// ErrUndefinedMetric means the metric has no defined value for the given data
	ErrUndefinedMetric = xerrors.New("undefined metric")
)

func check(yHat, y []float64) error {
	if len(yHat) != len(y) {
		return xerrors.Errorf("got %d predicted and %d actual values: %w", len(yHat), len(y), ErrDimensionMismatch)
	}
	if len(y) == 0 {
		return ErrEmptyInput
	}
	return nil
}

/*
RMSE is the root-mean-square error between predicted and actual values
*/
func RMSE(yHat, y []float64) (float64, error) {
	if err := check(yHat, y); err != nil {
		return 0, err
	}
	return math.Sqrt(fu.Mse(yHat, y)), nil
}

/*
MeanAbsError is the mean of absolute differences between predicted and actual values
*/
func MeanAbsError(yHat, y []float64) (float64, error) {
	if err := check(yHat, y); err != nil {
		return 0, err
	}
	var c float64
	for i, v := range yHat {
		c += math.Abs(v - y[i])
	}
	return c / float64(len(y)), nil
}

/*
MedAbsError is the median of absolute differences between predicted and actual values
*/
func MedAbsError(yHat, y []float64) (float64, error) {
	if err := check(yHat, y); err != nil {
		return 0, err
	}
	d := make([]float64, len(y))
	for i, v := range yHat {
		d[i] = math.Abs(v - y[i])
	}
	return fu.Median(d), nil
}

/*
R2 is the coefficient of determination 1 - SSres/SStot.

For constant actual values SStot is zero; the metric is 1 when residuals
are zero too and undefined otherwise.
*/
func R2(yHat, y []float64) (float64, error) {
	if err := check(yHat, y); err != nil {
		return 0, err
	}
	mean := stat.Mean(y, nil)
	var sres, stot float64
	for i, v := range y {
		q := yHat[i] - v
		sres += q * q
		m := v - mean
		stot += m * m
	}
	if stot == 0 {
		if sres == 0 {
			return 1, nil
		}
		return 0, xerrors.Errorf("r2 over constant actual values with nonzero residual: %w", ErrUndefinedMetric)
	}
	return 1 - sres/stot, nil
}
