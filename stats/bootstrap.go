package stats

import (
	"math/rand"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// Bootstrap draws n resamples of data with replacement and returns the
// statistic evaluated on each resample.
//
// The statistic receives a scratch buffer that is rewritten before every
// call; it may reorder the buffer but must not retain it.
func Bootstrap(r *rand.Rand, data []float64, n int, statistic func([]float64) float64) ([]float64, error) {
	if r == nil {
		panic("cannot bootstrap without a random source")
	}
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "bootstrap: no data")
	}
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidInput, "bootstrap: %d resamples", n)
	}
	if statistic == nil {
		return nil, errors.Wrap(ErrInvalidInput, "bootstrap: no statistic")
	}
	resample := make([]float64, len(data))
	result := make([]float64, n)
	for i := range result {
		for j := range resample {
			resample[j] = data[r.Intn(len(data))]
		}
		result[i] = statistic(resample)
	}
	return result, nil
}

// PercentileCI returns the two-sided percentile interval of samples at the
// given confidence level, e.g. 0.95 for the 2.5th to 97.5th percentiles.
func PercentileCI(samples []float64, confidence float64) (low, high float64, err error) {
	if len(samples) == 0 {
		return 0, 0, errors.Wrap(ErrInvalidInput, "percentile interval: no samples")
	}
	if confidence <= 0 || confidence >= 1 {
		return 0, 0, errors.Wrapf(ErrInvalidInput, "percentile interval: confidence %f", confidence)
	}
	sorted := append([]float64{}, samples...)
	slices.Sort(sorted)
	tail := (1 - confidence) / 2
	low = stat.Quantile(tail, stat.Empirical, sorted, nil)
	high = stat.Quantile(1-tail, stat.Empirical, sorted, nil)
	return low, high, nil
}
