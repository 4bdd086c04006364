package data

import (
	"golang.org/x/xerrors"
	"math"
	"math/rand"
)

// ErrInvalidSplitRatio means the split fractions do not form a valid distribution
var ErrInvalidSplitRatio = xerrors.New("invalid split ratio")

const ratioTolerance = 1e-9

/*
SplitRatio is the requested share of rows per subset. The three fractions
must each lie in [0,1] and sum to 1; an invalid ratio is rejected, never
silently adjusted.
*/
type SplitRatio struct {
	Learn      float64
	Validation float64
	Test       float64
}

func (r SplitRatio) Validate() error {
	for _, f := range []float64{r.Learn, r.Validation, r.Test} {
		if f < 0 || f > 1 {
			return xerrors.Errorf("fraction %v outside [0,1]: %w", f, ErrInvalidSplitRatio)
		}
	}
	if s := r.Learn + r.Validation + r.Test; math.Abs(s-1) > ratioTolerance {
		return xerrors.Errorf("fractions sum to %v: %w", s, ErrInvalidSplitRatio)
	}
	return nil
}

/*
RandomLabels assigns n rows to subsets by a seeded permutation: the first
floor(n*Learn) permuted indices become Learn, the next floor(n*Validation)
Validation, and the remainder Test. The same seed and n always produce the
same labels.
*/
func RandomLabels(n int, r SplitRatio, seed int64) ([]Label, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nl := int(math.Floor(float64(n) * r.Learn))
	nv := int(math.Floor(float64(n) * r.Validation))
	labels := make([]Label, n)
	for i, j := range perm {
		switch {
		case i < nl:
			labels[j] = Learn
		case i < nl+nv:
			labels[j] = Validation
		default:
			labels[j] = Test
		}
	}
	return labels, nil
}

/*
ExplicitLabels passes through the assignments already attached to the
dataset's rows, failing if any row carries no recognized label
*/
func ExplicitLabels(ds Dataset) ([]Label, error) {
	labels := make([]Label, len(ds.Rows))
	for i, row := range ds.Rows {
		switch row.Assignment {
		case Learn, Validation, Test:
			labels[i] = row.Assignment
		default:
			return nil, xerrors.Errorf("row %d (`%v`): %w", i, row.ID, ErrInvalidLabel)
		}
	}
	return labels, nil
}

/*
Assigned reports whether every row of the dataset carries an explicit
learn/validation/test assignment
*/
func Assigned(ds Dataset) bool {
	for _, row := range ds.Rows {
		switch row.Assignment {
		case Learn, Validation, Test:
		default:
			return false
		}
	}
	return len(ds.Rows) > 0
}

/*
Subsets are the three disjoint partitions of one dataset
*/
type Subsets struct {
	Learn      Dataset
	Validation Dataset
	Test       Dataset
}

/*
Partition splits a dataset by the given per-row labels. Every row lands in
exactly one subset; the union of the three equals the input.
*/
func Partition(ds Dataset, labels []Label) (Subsets, error) {
	if len(labels) != len(ds.Rows) {
		return Subsets{}, xerrors.Errorf("got %d labels for %d rows", len(labels), len(ds.Rows))
	}
	sub := func() Dataset {
		return Dataset{InputNames: ds.InputNames, OutputNames: ds.OutputNames}
	}
	s := Subsets{Learn: sub(), Validation: sub(), Test: sub()}
	for i, row := range ds.Rows {
		row.Assignment = labels[i]
		switch labels[i] {
		case Learn:
			s.Learn.Rows = append(s.Learn.Rows, row)
		case Validation:
			s.Validation.Rows = append(s.Validation.Rows, row)
		case Test:
			s.Test.Rows = append(s.Test.Rows, row)
		default:
			return Subsets{}, xerrors.Errorf("row %d: %w", i, ErrInvalidLabel)
		}
	}
	return s, nil
}
