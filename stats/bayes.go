package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// A BetaBernoulli is a Beta prior over the success rate of a Bernoulli
// process. Alpha and Beta must be positive; {Alpha: 1, Beta: 1} is the
// uniform prior.
type BetaBernoulli struct {
	Alpha float64
	Beta  float64
}

// Observe returns the posterior after the given outcome counts. It panics
// if either count is negative.
func (b BetaBernoulli) Observe(successes, failures int) BetaBernoulli {
	if successes < 0 || failures < 0 {
		panic("cannot observe negative counts")
	}
	return BetaBernoulli{
		Alpha: b.Alpha + float64(successes),
		Beta:  b.Beta + float64(failures),
	}
}

// Mean returns the expected success rate.
func (b BetaBernoulli) Mean() float64 {
	return distuv.Beta{Alpha: b.Alpha, Beta: b.Beta}.Mean()
}

// MAP returns the most probable success rate, or NaN when either parameter
// is at most 1 and the density has no interior mode.
func (b BetaBernoulli) MAP() float64 {
	if b.Alpha <= 1 || b.Beta <= 1 {
		return math.NaN()
	}
	return (b.Alpha - 1) / (b.Alpha + b.Beta - 2)
}

// CredibleInterval returns the equal-tailed credible interval for the
// success rate, e.g. level 0.95 for the 2.5th to 97.5th percentiles.
func (b BetaBernoulli) CredibleInterval(level float64) (low, high float64, err error) {
	if b.Alpha <= 0 || b.Beta <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidInput, "credible interval: alpha=%f beta=%f", b.Alpha, b.Beta)
	}
	if level <= 0 || level >= 1 {
		return 0, 0, errors.Wrapf(ErrInvalidInput, "credible interval: level %f", level)
	}
	dist := distuv.Beta{Alpha: b.Alpha, Beta: b.Beta}
	tail := (1 - level) / 2
	return dist.Quantile(tail), dist.Quantile(1 - tail), nil
}
