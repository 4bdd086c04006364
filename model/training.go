package model

import (
	"context"
	"fmt"
	"github.com/tjkessler/ECNet/data"
	"github.com/tjkessler/ECNet/fu"
	"github.com/tjkessler/ECNet/metrics"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"golang.org/x/xerrors"
	"io"
)

// DefaultSplit is used when a training is configured without one
var DefaultSplit = data.SplitRatio{Learn: 0.7, Validation: 0.2, Test: 0.1}

/*
Training is the configuration of one fit-with-validation cycle
*/
type Training struct {
	Split         data.SplitRatio // subset shares, DefaultSplit if zero
	Seed          int64           // seed of the random row assignment
	Memory        int             // trailing window size, DefaultMemory if zero
	StopThreshold float64         // mdrmse plateau threshold, DefaultStopThreshold if zero
	MaxEpochs     int             // epoch budget, DefaultMaxEpochs if zero
	Context       context.Context // optional, checked between epochs only
	ModelFile     iokit.Output    // optional file to store the trained predictor
	Verbose       func(string)    // optional print function
}

/*
Run drives one full training cycle: assign rows to subsets, normalize
with parameters computed from the learn subset only, then train the
predictor epoch by epoch until the convergence controller reaches a
terminal state.

Rows keeping an explicit L/V/T assignment are honored when every row has
one; otherwise labels come from a deterministic seeded split. The dataset
itself is never mutated.

When Context is set and expires, Run stops between epochs and returns the
partial report together with the context's error; the predictor's trained
state so far remains valid.
*/
func (t Training) Run(p Predictor, ds data.Dataset) (*Report, error) {
	if ds.Len() == 0 {
		return nil, xerrors.New("cannot train over an empty dataset")
	}
	labels, err := t.labels(ds)
	if err != nil {
		return nil, err
	}
	raw, err := data.Partition(ds, labels)
	if err != nil {
		return nil, err
	}
	if raw.Learn.Len() == 0 || raw.Validation.Len() == 0 {
		return nil, xerrors.Errorf("split left %d learn and %d validation rows", raw.Learn.Len(), raw.Validation.Len())
	}
	norms, err := data.ComputeNorms(raw.Learn, ds.InputNames)
	if err != nil {
		return nil, err
	}
	s, err := data.Partition(data.Normalize(ds, norms), labels)
	if err != nil {
		return nil, err
	}

	learnX, learnY := s.Learn.Inputs(), s.Learn.Outputs()
	validX, validY := s.Validation.Inputs(), fu.Flatnr(s.Validation.Outputs())
	conv := NewConvergence(t.Memory, t.StopThreshold, t.MaxEpochs)
	report := &Report{Norms: norms}

	for {
		if t.Context != nil {
			select {
			case <-t.Context.Done():
				report.Series = conv.Series()
				report.Reason = conv.State()
				report.Epochs = conv.Epoch()
				return report, zorros.Trace(t.Context.Err())
			default:
			}
		}
		p.TrainOneEpoch(learnX, learnY)
		score, err := metrics.RMSE(fu.Flatnr(p.Predict(validX)), validY)
		if err != nil {
			return nil, zorros.Wrapf(err, "scoring validation subset: %v", err.Error())
		}
		state := conv.Step(score)
		if t.Verbose != nil {
			t.Verbose(fmt.Sprintf(
				"[%5d] rmse: %.5f, mdrmse: %.7f",
				conv.Epoch(), score, conv.Mdrmse()))
		}
		if state != Running {
			break
		}
	}

	report.Series = conv.Series()
	report.Reason = conv.State()
	report.Epochs = conv.Epoch()
	if s.Test.Len() > 0 {
		if report.Test, err = testMetrics(p, s.Test); err != nil {
			return nil, err
		}
	}
	if t.ModelFile != nil {
		if err = t.persist(p); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (t Training) labels(ds data.Dataset) ([]data.Label, error) {
	if data.Assigned(ds) {
		return data.ExplicitLabels(ds)
	}
	split := t.Split
	if split == (data.SplitRatio{}) {
		split = DefaultSplit
	}
	return data.RandomLabels(ds.Len(), split, t.Seed)
}

func testMetrics(p Predictor, test data.Dataset) (*TestMetrics, error) {
	yHat := fu.Flatnr(p.Predict(test.Inputs()))
	y := fu.Flatnr(test.Outputs())
	m := &TestMetrics{}
	var err error
	if m.RMSE, err = metrics.RMSE(yHat, y); err != nil {
		return nil, err
	}
	if m.MeanAbs, err = metrics.MeanAbsError(yHat, y); err != nil {
		return nil, err
	}
	if m.MedAbs, err = metrics.MedAbsError(yHat, y); err != nil {
		return nil, err
	}
	if m.R2, err = metrics.R2(yHat, y); err != nil {
		return nil, err
	}
	return m, nil
}

func (t Training) persist(p Predictor) error {
	wt, ok := p.(io.WriterTo)
	if !ok {
		zlog.Warning("predictor is not serializable, model file not written")
		return nil
	}
	wh, err := t.ModelFile.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if _, err = wt.WriteTo(wh); err != nil {
		return zorros.Trace(err)
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}
