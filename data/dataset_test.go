package data

import (
	"gotest.tools/assert"
	"testing"
)

func Test_Select(t *testing.T) {
	ds := Dataset{
		InputNames:  []string{"a", "b", "c"},
		OutputNames: []string{"y"},
		Rows: []Row{
			{ID: "1", Inputs: []float64{1, 2, 3}, Outputs: []float64{10}, Assignment: Learn},
			{ID: "2", Inputs: []float64{4, 5, 6}, Outputs: []float64{20}, Assignment: Test},
		},
	}
	q, err := ds.Select([]string{"c", "a"})
	assert.NilError(t, err)
	assert.DeepEqual(t, q.InputNames, []string{"c", "a"})
	assert.DeepEqual(t, q.Rows[0].Inputs, []float64{3, 1})
	assert.DeepEqual(t, q.Rows[1].Inputs, []float64{6, 4})
	assert.Assert(t, q.Rows[0].Outputs[0] == 10)
	assert.Assert(t, q.Rows[1].Assignment == Test)

	_, err = ds.Select([]string{"nope"})
	assert.Assert(t, err != nil)
}

func Test_InputColumn(t *testing.T) {
	ds := Dataset{
		InputNames: []string{"a", "b"},
		Rows: []Row{
			{Inputs: []float64{1, 2}},
			{Inputs: []float64{3, 4}},
		},
	}
	v, err := ds.InputColumn("b")
	assert.NilError(t, err)
	assert.DeepEqual(t, v, []float64{2, 4})
}
