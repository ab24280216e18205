// Package synth generates labeled datasets with known structure for
// exercising and testing classifiers.
//
// Every generator takes an explicit *rand.Rand so that callers control
// reproducibility; none of them touch the global random source.
package synth

import "math/rand"

// ThresholdClass samples n points uniformly from [-1, 1]^numFeatures and
// labels each point 1 when x[feature] > threshold and 0 otherwise.
func ThresholdClass(r *rand.Rand, n, numFeatures, feature int, threshold float64) ([][]float64, []int) {
	xs := make([][]float64, n)
	labels := make([]int, n)
	for i := range xs {
		x := make([]float64, numFeatures)
		for j := range x {
			x[j] = r.Float64()*2 - 1
		}
		xs[i] = x
		if x[feature] > threshold {
			labels[i] = 1
		}
	}
	return xs, labels
}

// XORClass samples n points uniformly from [-1, 1]^2 and labels each point 1
// when both coordinates have the same sign. No single axis-aligned split
// separates the classes.
func XORClass(r *rand.Rand, n int) ([][]float64, []int) {
	xs := make([][]float64, n)
	labels := make([]int, n)
	for i := range xs {
		x := []float64{r.Float64()*2 - 1, r.Float64()*2 - 1}
		xs[i] = x
		if x[0]*x[1] > 0 {
			labels[i] = 1
		}
	}
	return xs, labels
}

// Blobs samples n points from isotropic Gaussian clusters around the given
// centers, cycling through the centers, and labels each point with the index
// of its center.
func Blobs(r *rand.Rand, n int, centers [][]float64, noise float64) ([][]float64, []int) {
	if len(centers) == 0 {
		panic("cannot sample blobs with no centers")
	}
	xs := make([][]float64, n)
	labels := make([]int, n)
	for i := range xs {
		center := centers[i%len(centers)]
		x := make([]float64, len(center))
		for j, c := range center {
			x[j] = c + r.NormFloat64()*noise
		}
		xs[i] = x
		labels[i] = i % len(centers)
	}
	return xs, labels
}

// Normal samples n values from a Gaussian with the given mean and standard
// deviation.
func Normal(r *rand.Rand, n int, mu, sigma float64) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = mu + r.NormFloat64()*sigma
	}
	return result
}
