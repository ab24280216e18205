package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalMLE returns the maximum-likelihood mean and standard deviation of
// data under a Gaussian model. The variance uses the 1/n maximum-likelihood
// normalization, not the unbiased 1/(n-1) estimate.
func NormalMLE(data []float64) (mu, sigma float64, err error) {
	if len(data) < 2 {
		return 0, 0, errors.Wrap(ErrInvalidInput, "normal mle: need at least two values")
	}
	mu = stat.Mean(data, nil)
	sigma = math.Sqrt(stat.MomentAbout(2, data, mu, nil))
	if sigma == 0 {
		return 0, 0, errors.Wrap(ErrInvalidInput, "normal mle: all values are equal")
	}
	return mu, sigma, nil
}

// NormalLogLikelihood sums the Gaussian log density with the given
// parameters over data.
func NormalLogLikelihood(data []float64, mu, sigma float64) (float64, error) {
	if len(data) == 0 {
		return 0, errors.Wrap(ErrInvalidInput, "log likelihood: no data")
	}
	if sigma <= 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "log likelihood: sigma %f", sigma)
	}
	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	var total float64
	for _, x := range data {
		total += dist.LogProb(x)
	}
	return total, nil
}
