package dtree

import (
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// splitInfo describes the outcome of a split search: the feature and
// threshold of the best "x[feature] <= threshold" test, and the information
// gain the test achieves.
type splitInfo[F constraints.Float] struct {
	Feature   int
	Threshold F
	Gain      float64
}

type featureSample[F constraints.Float] struct {
	Value F
	Class int
}

// searchSplit finds the split of rows with the highest information gain, or
// reports that no split improves on the parent entropy.
//
// All features are searched, one Goroutine per feature up to the configured
// concurrency. Candidate thresholds are visited in ascending order within a
// feature and features are compared in ascending order, so ties are always
// resolved in favor of the earliest candidate regardless of concurrency.
func (b *builderState[F]) searchSplit(rows []int, counts []int) (splitInfo[F], bool) {
	parent := entropyOfCounts(counts, len(rows))
	numFeatures := len(b.xs[0])

	results := make([]splitInfo[F], numFeatures)
	found := make([]bool, numFeatures)
	essentials.ConcurrentMap(essentials.MinInt(b.concurrency, numFeatures), numFeatures, func(f int) {
		results[f], found[f] = b.searchFeature(rows, f, parent)
	})

	var best splitInfo[F]
	ok := false
	for f := 0; f < numFeatures; f++ {
		if found[f] && (!ok || results[f].Gain > best.Gain) {
			best = results[f]
			ok = true
		}
	}
	return best, ok
}

// searchFeature sweeps every distinct value of one feature across rows and
// returns the threshold with the highest information gain, if any threshold
// has positive gain.
func (b *builderState[F]) searchFeature(rows []int, feature int, parent float64) (splitInfo[F], bool) {
	n := len(rows)
	samples := make([]featureSample[F], n)
	for i, row := range rows {
		samples[i] = featureSample[F]{Value: b.xs[row][feature], Class: b.classes[row]}
	}
	slices.SortFunc(samples, func(x, y featureSample[F]) bool {
		return x.Value < y.Value
	})

	left := make([]int, len(b.classLabels))
	right := make([]int, len(b.classLabels))
	for _, s := range samples {
		right[s.Class]++
	}

	best := splitInfo[F]{Feature: feature}
	ok := false
	for i, s := range samples {
		if i > 0 && s.Value != samples[i-1].Value {
			// Threshold samples[i-1].Value sends the first i sorted rows
			// left and the rest right. The largest value never becomes a
			// candidate, since its right side would be empty.
			fracLeft := float64(i) / float64(n)
			fracRight := float64(n-i) / float64(n)
			gain := parent - (fracLeft*entropyOfCounts(left, i) +
				fracRight*entropyOfCounts(right, n-i))
			if gain > best.Gain {
				best.Threshold = samples[i-1].Value
				best.Gain = gain
				ok = true
			}
		}
		left[s.Class]++
		right[s.Class]--
	}
	return best, ok
}
