/*
Package data implements tabular datasets for trainable numeric predictors:
loading ECNet-formatted databases, min-max normalization and
learn/validation/test partitioning.
*/
package data

import (
	"golang.org/x/xerrors"
)

/*
Label assigns a row to one of the learn/validation/test subsets
*/
type Label int

const (
	Unassigned Label = iota
	Learn
	Validation
	Test
)

func (l Label) String() string {
	switch l {
	case Learn:
		return "L"
	case Validation:
		return "V"
	case Test:
		return "T"
	}
	return ""
}

// ErrInvalidLabel means an explicit row assignment is outside {L,V,T}
var ErrInvalidLabel = xerrors.New("invalid assignment label")

/*
Row is a single dataset record.

Inputs and Outputs are positional over the owning dataset's
InputNames/OutputNames.
*/
type Row struct {
	ID         string
	Inputs     []float64
	Outputs    []float64
	Assignment Label
}

/*
Dataset is an ordered, immutable collection of rows sharing one set of
named input and output columns. Operations return new datasets and never
mutate their receiver.
*/
type Dataset struct {
	InputNames  []string
	OutputNames []string
	Rows        []Row
}

func (ds Dataset) Len() int { return len(ds.Rows) }

func (ds Dataset) inputIndex(name string) int {
	for i, n := range ds.InputNames {
		if n == name {
			return i
		}
	}
	return -1
}

/*
Select projects the dataset onto a subset of input columns, in the given
order. Output columns, row order and assignments are preserved.
*/
func (ds Dataset) Select(columns []string) (Dataset, error) {
	ix := make([]int, len(columns))
	for i, c := range columns {
		j := ds.inputIndex(c)
		if j < 0 {
			return Dataset{}, xerrors.Errorf("dataset has no input column `%v`", c)
		}
		ix[i] = j
	}
	r := Dataset{
		InputNames:  append([]string{}, columns...),
		OutputNames: ds.OutputNames,
		Rows:        make([]Row, len(ds.Rows)),
	}
	for i, row := range ds.Rows {
		in := make([]float64, len(ix))
		for k, j := range ix {
			in[k] = row.Inputs[j]
		}
		r.Rows[i] = Row{ID: row.ID, Inputs: in, Outputs: row.Outputs, Assignment: row.Assignment}
	}
	return r, nil
}

/*
InputColumn returns all values of one input column in row order
*/
func (ds Dataset) InputColumn(name string) ([]float64, error) {
	j := ds.inputIndex(name)
	if j < 0 {
		return nil, xerrors.Errorf("dataset has no input column `%v`", name)
	}
	v := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		v[i] = row.Inputs[j]
	}
	return v, nil
}

/*
Inputs returns the input matrix, one slice per row
*/
func (ds Dataset) Inputs() [][]float64 {
	m := make([][]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		m[i] = row.Inputs
	}
	return m
}

/*
Outputs returns the output matrix, one slice per row
*/
func (ds Dataset) Outputs() [][]float64 {
	m := make([][]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		m[i] = row.Outputs
	}
	return m
}
