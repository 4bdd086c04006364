/*
Package limit implements greedy forward selection of input parameters.

The search commits one column per round based on the best marginal
validation RMSE of a trial model, without backtracking. The greedy proxy
is a documented approximation: it is provably suboptimal versus
exhaustive search, but keeps the trial count bounded by k times the
column count.
*/
package limit

import (
	"fmt"
	"github.com/tjkessler/ECNet/fu"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"sync"
)

// ErrInsufficientFeatures means the requested retained count exceeds the available columns
var ErrInsufficientFeatures = xerrors.New("insufficient features")

const DefaultTolerance = 1e-9

/*
FitnessFunc evaluates one candidate column set: it trains a fresh trial
model on the learn subset and returns its RMSE over the validation subset
*/
type FitnessFunc func(columns []string) (float64, error)

/*
Space is a definition of the input selection search
*/
type Space struct {
	Columns   []string     // candidate input columns in canonical order
	Target    int          // count of columns to retain
	Fitness   FitnessFunc  // trial evaluation function
	Workers   int          // optional concurrent evaluations per round
	Tolerance float64      // RMSE tie tolerance, DefaultTolerance if zero
	Verbose   func(string) // optional print function
}

/*
Search runs the greedy forward selection and returns the retained columns
in the order they were committed; earlier columns contributed more
marginal predictive value under the greedy proxy.

Candidates tying on RMSE within the tolerance resolve to the earlier
column in canonical order, so results are deterministic regardless of
Workers.
*/
func (s Space) Search() ([]string, error) {
	if s.Target < 1 || s.Target > len(s.Columns) {
		return nil, xerrors.Errorf("cannot retain %d of %d columns: %w",
			s.Target, len(s.Columns), ErrInsufficientFeatures)
	}
	tol := fu.Fnzd(s.Tolerance, DefaultTolerance)
	retained := make([]string, 0, s.Target)
	candidates := append([]string{}, s.Columns...)
	for len(retained) < s.Target {
		scores := make([]float64, len(candidates))
		errs := make([]error, len(candidates))
		s.round(retained, candidates, scores, errs)
		for i, err := range errs {
			if err != nil {
				return nil, zorros.Wrapf(err, "evaluating column `%v`: %v", candidates[i], err.Error())
			}
		}
		best := 0
		for i := 1; i < len(candidates); i++ {
			if scores[i] < scores[best]-tol {
				best = i
			}
		}
		if s.Verbose != nil {
			s.Verbose(fmt.Sprintf("[%2d] retained `%v`, rmse: %.5f",
				len(retained)+1, candidates[best], scores[best]))
		}
		retained = append(retained, candidates[best])
		candidates = append(candidates[:best], candidates[best+1:]...)
	}
	return retained, nil
}

// round fills scores and errs slot by slot; with Workers > 1 trials run
// concurrently and the caller's argmin happens only after all complete
func (s Space) round(retained, candidates []string, scores []float64, errs []error) {
	trial := func(i int) {
		cols := make([]string, 0, len(retained)+1)
		cols = append(append(cols, retained...), candidates[i])
		scores[i], errs[i] = s.Fitness(cols)
	}
	workers := s.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers <= 1 {
		for i := range candidates {
			trial(i)
		}
		return
	}
	queue := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				trial(i)
			}
		}()
	}
	for i := range candidates {
		queue <- i
	}
	close(queue)
	wg.Wait()
}
