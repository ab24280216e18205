package dtree

import (
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/constraints"
)

// A Forest is a bootstrap-aggregated ensemble of trees. Each tree votes for
// a class and the majority wins, with ties broken in favor of the smallest
// label value.
type Forest[F constraints.Float] struct {
	Trees       []*Tree[F]
	NumFeatures int
}

// A ForestBuilder fits a Forest by growing trees on bootstrap resamples of
// the training data.
type ForestBuilder[F constraints.Float] struct {
	// Builder configures the individual trees.
	Builder Builder[F]

	// NumTrees is the ensemble size. Values below 1 behave as 10.
	NumTrees int

	// Rand draws the bootstrap resamples. It must not be nil; sharing one
	// seeded source across runs makes fits reproducible.
	Rand *rand.Rand
}

// Fit grows the ensemble. The dataset rules match Builder.Fit.
//
// Bootstrap indices are drawn from Rand sequentially before any tree is
// grown, so the result does not depend on concurrency.
func (f *ForestBuilder[F]) Fit(xs [][]F, labels []int) (*Forest[F], error) {
	if f.Rand == nil {
		panic("cannot fit a forest without a random source")
	}
	if err := checkDataset(len(labels), xs); err != nil {
		return nil, errors.Wrap(err, "fit forest")
	}

	numTrees := f.NumTrees
	if numTrees < 1 {
		numTrees = 10
	}
	samples := make([][]int, numTrees)
	for i := range samples {
		sample := make([]int, len(xs))
		for j := range sample {
			sample[j] = f.Rand.Intn(len(xs))
		}
		samples[i] = sample
	}

	concurrency := f.Builder.Concurrency
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	trees := make([]*Tree[F], numTrees)
	firstErr := make([]error, numTrees)
	essentials.ConcurrentMap(essentials.MinInt(concurrency, numTrees), numTrees, func(i int) {
		resampledXs := make([][]F, len(samples[i]))
		resampledLabels := make([]int, len(samples[i]))
		for j, row := range samples[i] {
			resampledXs[j] = xs[row]
			resampledLabels[j] = labels[row]
		}
		builder := f.Builder
		trees[i], firstErr[i] = builder.Fit(resampledXs, resampledLabels)
	})
	for _, err := range firstErr {
		if err != nil {
			return nil, errors.Wrap(err, "fit forest")
		}
	}
	return &Forest[F]{Trees: trees, NumFeatures: len(xs[0])}, nil
}

// Predict returns the majority vote of the ensemble for x.
func (f *Forest[F]) Predict(x []F) (int, error) {
	if len(f.Trees) == 0 {
		panic("cannot predict with an empty forest")
	}
	votes := make([]int, len(f.Trees))
	for i, tree := range f.Trees {
		class, err := tree.Predict(x)
		if err != nil {
			return 0, err
		}
		votes[i] = class
	}
	return MajorityLabel(votes), nil
}

// PredictAll predicts a class for every vector in xs.
func (f *Forest[F]) PredictAll(xs [][]F) ([]int, error) {
	result := make([]int, len(xs))
	for i, x := range xs {
		class, err := f.Predict(x)
		if err != nil {
			return nil, err
		}
		result[i] = class
	}
	return result, nil
}
