package dtree

import "math"

// Entropy computes the Shannon entropy, in bits, of a label distribution.
//
// The result is 0 when every label is identical and log2(k) when k distinct
// labels occur equally often. Entropy panics if labels is empty.
func Entropy(labels []int) float64 {
	if len(labels) == 0 {
		panic("cannot compute entropy of no labels")
	}
	counts := map[int]int{}
	var order []int
	for _, label := range labels {
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	total := float64(len(labels))
	var result float64
	for _, label := range order {
		frac := float64(counts[label]) / total
		result -= frac * math.Log2(frac)
	}
	return result
}

// MajorityLabel returns the most frequent label, breaking ties in favor of
// the smallest label value. It panics if labels is empty.
func MajorityLabel(labels []int) int {
	if len(labels) == 0 {
		panic("cannot take majority of no labels")
	}
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

// entropyOfCounts computes entropy from per-class counts, skipping empty
// classes so that log2 is never evaluated at zero.
func entropyOfCounts(counts []int, total int) float64 {
	t := float64(total)
	var result float64
	for _, count := range counts {
		if count == 0 {
			continue
		}
		frac := float64(count) / t
		result -= frac * math.Log2(frac)
	}
	return result
}
