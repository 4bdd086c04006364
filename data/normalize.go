package data

import (
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
)

/*
Range is the observed (min, max) of one column
*/
type Range struct {
	Min float64
	Max float64
}

/*
Norms holds per-column min-max normalization parameters.

It is a plain value: callers may serialize it in any format and apply it
later to new data without recomputation.
*/
type Norms struct {
	Columns []string
	Ranges  map[string]Range
}

/*
ComputeNorms scans the given input columns of a dataset (typically the
learn subset only, to avoid leakage) and records each column's min and max
*/
func ComputeNorms(ds Dataset, columns []string) (Norms, error) {
	n := Norms{Columns: append([]string{}, columns...), Ranges: map[string]Range{}}
	for _, c := range columns {
		v, err := ds.InputColumn(c)
		if err != nil {
			return Norms{}, err
		}
		if len(v) == 0 {
			return Norms{}, xerrors.Errorf("cannot compute norms of column `%v` over an empty dataset", c)
		}
		n.Ranges[c] = Range{Min: floats.Min(v), Max: floats.Max(v)}
	}
	return n, nil
}

func (n Norms) scale(c string, v float64) (float64, bool) {
	r, ok := n.Ranges[c]
	if !ok {
		return v, false
	}
	if r.Max == r.Min {
		// degenerate constant column
		return 0.5, true
	}
	q := (v - r.Min) / (r.Max - r.Min)
	if q < 0 {
		q = 0
	} else if q > 1 {
		q = 1
	}
	return q, true
}

/*
Normalize rescales every column named in n to [0,1] and returns the
rescaled dataset. Columns without normalization parameters pass through
unchanged; values outside the recorded range clamp to the interval ends.
*/
func Normalize(ds Dataset, n Norms) Dataset {
	r := Dataset{InputNames: ds.InputNames, OutputNames: ds.OutputNames, Rows: make([]Row, len(ds.Rows))}
	for i, row := range ds.Rows {
		in := make([]float64, len(row.Inputs))
		for j, v := range row.Inputs {
			if q, ok := n.scale(ds.InputNames[j], v); ok {
				in[j] = q
			} else {
				in[j] = v
			}
		}
		r.Rows[i] = Row{ID: row.ID, Inputs: in, Outputs: row.Outputs, Assignment: row.Assignment}
	}
	return r
}

/*
Denormalize maps a normalized value of the given column back to its
original scale, inverting Normalize up to floating tolerance for
non-degenerate columns
*/
func Denormalize(v float64, n Norms, column string) (float64, error) {
	r, ok := n.Ranges[column]
	if !ok {
		return 0, xerrors.Errorf("no normalization parameters for column `%v`", column)
	}
	return v*(r.Max-r.Min) + r.Min, nil
}
