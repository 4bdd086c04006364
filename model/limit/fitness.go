package limit

import (
	"github.com/tjkessler/ECNet/data"
	"github.com/tjkessler/ECNet/model"
)

/*
Fitness adapts a full training cycle into a FitnessFunc: each trial
projects the dataset onto the candidate columns, trains a fresh predictor
from the factory and reports its final validation RMSE
*/
func Fitness(ds data.Dataset, t model.Training, factory func() model.Predictor) FitnessFunc {
	return func(columns []string) (float64, error) {
		sub, err := ds.Select(columns)
		if err != nil {
			return 0, err
		}
		report, err := t.Run(factory(), sub)
		if err != nil {
			return 0, err
		}
		return report.Series[len(report.Series)-1], nil
	}
}
