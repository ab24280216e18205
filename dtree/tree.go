package dtree

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// A Node is a single node of a fitted decision tree. It is either a decision
// node, routing vectors to exactly two children, or a leaf.
//
// Decision nodes send a vector x to LessEqual when x[Feature] <= Threshold
// and to Greater otherwise. Leaves predict Class.
type Node[F constraints.Float] struct {
	Feature   int
	Threshold F
	Gain      float64
	LessEqual *Node[F]
	Greater   *Node[F]

	// Class is only used by leaf nodes.
	Class int
}

func (n *Node[F]) IsLeaf() bool {
	return n.LessEqual == nil
}

// Walk calls f for every node in the subtree rooted at n, in depth-first
// pre-order, with the depth of each node relative to n.
func (n *Node[F]) Walk(f func(n *Node[F], depth int)) {
	n.walk(0, f)
}

func (n *Node[F]) walk(depth int, f func(*Node[F], int)) {
	f(n, depth)
	if !n.IsLeaf() {
		n.LessEqual.walk(depth+1, f)
		n.Greater.walk(depth+1, f)
	}
}

// NumLeaves counts the leaves under n.
func (n *Node[F]) NumLeaves() int {
	if n.IsLeaf() {
		return 1
	}
	return n.LessEqual.NumLeaves() + n.Greater.NumLeaves()
}

// Depth returns the number of edges along the longest path from n to a leaf.
func (n *Node[F]) Depth() int {
	if n.IsLeaf() {
		return 0
	}
	left := n.LessEqual.Depth()
	right := n.Greater.Depth()
	if right > left {
		return right + 1
	}
	return left + 1
}

func (n *Node[F]) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("return %v", n.Class)
	} else {
		return fmt.Sprintf(
			"if x[%d] <= %v {\n%s\n} else {\n%s\n}",
			n.Feature,
			n.Threshold,
			indentText(n.LessEqual.String()),
			indentText(n.Greater.String()),
		)
	}
}

func indentText(text string) string {
	lines := strings.Split(text, "\n")
	for i, x := range lines {
		lines[i] = "  " + x
	}
	return strings.Join(lines, "\n")
}

// A Tree is a fitted decision tree classifier.
//
// Trees are produced by Builder.Fit and are never modified afterwards;
// fitting new data produces a new Tree.
type Tree[F constraints.Float] struct {
	Root        *Node[F]
	NumFeatures int
}

// Predict routes the vector x to a leaf and returns the leaf's class.
//
// It fails with ErrDimension if x does not have exactly NumFeatures entries.
func (t *Tree[F]) Predict(x []F) (int, error) {
	if len(x) != t.NumFeatures {
		return 0, errors.Wrapf(ErrDimension, "predict: vector has %d features, model expects %d",
			len(x), t.NumFeatures)
	}
	node := t.Root
	for !node.IsLeaf() {
		if node.Feature < 0 || node.Feature >= len(x) {
			// Unreachable for trees produced by Fit, but hand-built trees
			// may reference features that x does not have.
			return 0, errors.Wrapf(ErrDimension, "predict: node tests feature %d of %d",
				node.Feature, len(x))
		}
		if x[node.Feature] <= node.Threshold {
			node = node.LessEqual
		} else {
			node = node.Greater
		}
	}
	return node.Class, nil
}

// PredictAll predicts a class for every vector in xs.
func (t *Tree[F]) PredictAll(xs [][]F) ([]int, error) {
	result := make([]int, len(xs))
	for i, x := range xs {
		class, err := t.Predict(x)
		if err != nil {
			return nil, err
		}
		result[i] = class
	}
	return result, nil
}

// NumLeaves counts the leaves of the tree.
func (t *Tree[F]) NumLeaves() int {
	return t.Root.NumLeaves()
}

// Depth returns the depth of the deepest leaf.
func (t *Tree[F]) Depth() int {
	return t.Root.Depth()
}

func (t *Tree[F]) String() string {
	return t.Root.String()
}
