package dtree

import (
	"log"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Unbounded disables the depth limit of a Builder.
const Unbounded = -1

// A Builder fits decision trees by exhaustive greedy induction: every node
// tests every distinct observed value of every feature and keeps the split
// with the highest information gain.
//
// The zero value stops immediately at the root. Set MaxDepth to Unbounded to
// grow trees until leaves are pure or too small to split.
type Builder[F constraints.Float] struct {
	// MaxDepth limits the number of decision nodes along any root-to-leaf
	// path. Zero produces a single leaf; negative values disable the limit.
	MaxDepth int

	// MinSamplesSplit is the smallest node size that may still be split.
	// Values below 2 behave as 2.
	MinSamplesSplit int

	// Concurrency is the maximum number of Goroutines used during the
	// search. Values below 1 behave as GOMAXPROCS.
	Concurrency int

	// Verbose, if true, logs every chosen split.
	Verbose bool
}

// Fit grows a decision tree for the rows of xs and their labels.
//
// The dataset must be rectangular with at least one row and one column,
// exactly one label per row, and no NaN feature values; anything else fails
// with ErrInvalidDataset. Neither xs nor labels is modified or retained.
func (b *Builder[F]) Fit(xs [][]F, labels []int) (*Tree[F], error) {
	if err := checkDataset(len(labels), xs); err != nil {
		return nil, errors.Wrap(err, "fit tree")
	}

	concurrency := b.Concurrency
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	minSplit := b.MinSamplesSplit
	if minSplit < 2 {
		minSplit = 2
	}

	// Assign dense class ids in first-occurrence order so that entropy sums
	// and majority votes never depend on map iteration order.
	classes := make([]int, len(labels))
	classIDs := map[int]int{}
	var classLabels []int
	for i, label := range labels {
		id, ok := classIDs[label]
		if !ok {
			id = len(classLabels)
			classIDs[label] = id
			classLabels = append(classLabels, label)
		}
		classes[i] = id
	}

	state := &builderState[F]{
		xs:          xs,
		classes:     classes,
		classLabels: classLabels,
		maxDepth:    b.MaxDepth,
		minSplit:    minSplit,
		concurrency: concurrency,
		verbose:     b.Verbose,
	}
	rows := make([]int, len(xs))
	for i := range rows {
		rows[i] = i
	}

	queue := newBuildQueue[F](concurrency)
	root := queue.Run(func() *Node[F] {
		return state.build(queue, rows, 0)
	})
	return &Tree[F]{Root: root, NumFeatures: len(xs[0])}, nil
}

// checkDataset verifies that xs is a non-empty rectangular matrix with
// numLabels rows and no NaN entries. NaN never compares below a threshold,
// so it would otherwise corrupt the split search.
func checkDataset[F constraints.Float](numLabels int, xs [][]F) error {
	if len(xs) == 0 {
		return errors.Wrap(ErrInvalidDataset, "no rows")
	}
	if len(xs) != numLabels {
		return errors.Wrapf(ErrInvalidDataset, "%d rows but %d labels", len(xs), numLabels)
	}
	numFeatures := len(xs[0])
	if numFeatures == 0 {
		return errors.Wrap(ErrInvalidDataset, "rows have no features")
	}
	for i, row := range xs {
		if len(row) != numFeatures {
			return errors.Wrapf(ErrInvalidDataset, "row %d has %d features, expected %d",
				i, len(row), numFeatures)
		}
		for j, v := range row {
			if math.IsNaN(float64(v)) {
				return errors.Wrapf(ErrInvalidDataset, "row %d has NaN at feature %d", i, j)
			}
		}
	}
	return nil
}

type builderState[F constraints.Float] struct {
	xs          [][]F
	classes     []int
	classLabels []int
	maxDepth    int
	minSplit    int
	concurrency int
	verbose     bool
}

func (b *builderState[F]) build(queue *buildQueue[F], rows []int, depth int) *Node[F] {
	if len(rows) == 0 {
		panic("cannot build node with no rows")
	}
	counts := b.classCounts(rows)
	if (b.maxDepth >= 0 && depth >= b.maxDepth) || len(rows) < b.minSplit || onlyClass(counts) {
		return b.leaf(counts)
	}
	split, ok := b.searchSplit(rows, counts)
	if !ok {
		return b.leaf(counts)
	}

	var left, right []int
	for _, row := range rows {
		if b.xs[row][split.Feature] <= split.Threshold {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	if b.verbose {
		log.Printf("split depth=%d size=%d feature=%d threshold=%v gain=%f",
			depth, len(rows), split.Feature, split.Threshold, split.Gain)
	}

	lessEqual, greater := queue.Fork(
		func() *Node[F] {
			return b.build(queue, left, depth+1)
		},
		func() *Node[F] {
			return b.build(queue, right, depth+1)
		},
	)
	return &Node[F]{
		Feature:   split.Feature,
		Threshold: split.Threshold,
		Gain:      split.Gain,
		LessEqual: lessEqual,
		Greater:   greater,
	}
}

func (b *builderState[F]) classCounts(rows []int) []int {
	counts := make([]int, len(b.classLabels))
	for _, row := range rows {
		counts[b.classes[row]]++
	}
	return counts
}

// leaf emits a majority-vote leaf, breaking count ties in favor of the
// smallest label value.
func (b *builderState[F]) leaf(counts []int) *Node[F] {
	best := -1
	for id, count := range counts {
		if count == 0 {
			continue
		}
		if best < 0 || count > counts[best] ||
			(count == counts[best] && b.classLabels[id] < b.classLabels[best]) {
			best = id
		}
	}
	return &Node[F]{Class: b.classLabels[best]}
}

// onlyClass reports whether at most one class has a non-zero count.
func onlyClass(counts []int) bool {
	seen := false
	for _, count := range counts {
		if count == 0 {
			continue
		}
		if seen {
			return false
		}
		seen = true
	}
	return true
}
