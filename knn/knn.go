// Package knn implements k-nearest-neighbor classification over dense
// feature vectors.
package knn

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/constraints"
)

// A Classifier predicts the majority label among the K training rows closest
// to a query in Euclidean distance.
//
// Distance ties prefer the earlier training row; vote ties prefer the
// smallest label value.
type Classifier[F constraints.Float] struct {
	// K is the number of neighbors consulted per prediction. Values below 1
	// behave as 1, and a prediction never consults more neighbors than
	// there are training rows.
	K int

	xs          [][]F
	labels      []int
	numFeatures int
}

// Fit stores the training set.
//
// The dataset must be rectangular with at least one row and one column and
// exactly one label per row; anything else fails with ErrInvalidDataset.
// The slices are retained without copying, so callers must not modify them
// while the classifier is in use.
func (c *Classifier[F]) Fit(xs [][]F, labels []int) error {
	if len(xs) == 0 {
		return errors.Wrap(ErrInvalidDataset, "fit knn: no rows")
	}
	if len(xs) != len(labels) {
		return errors.Wrapf(ErrInvalidDataset, "fit knn: %d rows but %d labels", len(xs), len(labels))
	}
	numFeatures := len(xs[0])
	if numFeatures == 0 {
		return errors.Wrap(ErrInvalidDataset, "fit knn: rows have no features")
	}
	for i, row := range xs {
		if len(row) != numFeatures {
			return errors.Wrapf(ErrInvalidDataset, "fit knn: row %d has %d features, expected %d",
				i, len(row), numFeatures)
		}
	}
	c.xs = xs
	c.labels = labels
	c.numFeatures = numFeatures
	return nil
}

// Predict classifies a single vector. It fails with ErrDimension if x does
// not have the same width as the training rows.
func (c *Classifier[F]) Predict(x []F) (int, error) {
	if c.xs == nil {
		panic("cannot predict before fit")
	}
	if len(x) != c.numFeatures {
		return 0, errors.Wrapf(ErrDimension, "predict: vector has %d features, model expects %d",
			len(x), c.numFeatures)
	}

	// Squared distances order identically to true distances, so the square
	// root is never taken.
	dists := make([]float64, len(c.xs))
	order := make([]int, len(c.xs))
	votes := make([]int, len(c.xs))
	for i, row := range c.xs {
		var sum float64
		for j, v := range row {
			delta := float64(v) - float64(x[j])
			sum += delta * delta
		}
		dists[i] = sum
		order[i] = i
		votes[i] = c.labels[i]
	}
	essentials.VoodooSort(dists, func(i, j int) bool {
		if dists[i] == dists[j] {
			return order[i] < order[j]
		}
		return dists[i] < dists[j]
	}, order, votes)

	k := c.K
	if k < 1 {
		k = 1
	}
	k = essentials.MinInt(k, len(votes))
	return majority(votes[:k]), nil
}

// PredictAll classifies every vector in xs.
func (c *Classifier[F]) PredictAll(xs [][]F) ([]int, error) {
	result := make([]int, len(xs))
	for i, x := range xs {
		label, err := c.Predict(x)
		if err != nil {
			return nil, err
		}
		result[i] = label
	}
	return result, nil
}

func majority(labels []int) int {
	counts := map[int]int{}
	var order []int
	for _, label := range labels {
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	best := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[best] ||
			(counts[label] == counts[best] && label < best) {
			best = label
		}
	}
	return best
}
