package dtree

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/statlearn/synth"
)

func TestForestPredictVote(t *testing.T) {
	leafTree := func(class int) *Tree[float64] {
		return &Tree[float64]{NumFeatures: 1, Root: &Node[float64]{Class: class}}
	}
	forest := &Forest[float64]{
		NumFeatures: 1,
		Trees:       []*Tree[float64]{leafTree(2), leafTree(0), leafTree(2)},
	}
	class, err := forest.Predict([]float64{0})
	if err != nil {
		t.Fatal(err)
	}
	if class != 2 {
		t.Errorf("expected class 2 but got %d", class)
	}

	// With a 2-2 vote, the smaller label wins.
	forest.Trees = append(forest.Trees, leafTree(0))
	class, err = forest.Predict([]float64{0})
	if err != nil {
		t.Fatal(err)
	}
	if class != 0 {
		t.Errorf("expected class 0 but got %d", class)
	}
}

func TestForestFit(t *testing.T) {
	xs, labels := synth.ThresholdClass(rand.New(rand.NewSource(4)), 300, 4, 2, -0.1)
	builder := &ForestBuilder[float64]{
		Builder:  Builder[float64]{MaxDepth: Unbounded},
		NumTrees: 7,
		Rand:     rand.New(rand.NewSource(5)),
	}
	forest, err := builder.Fit(xs, labels)
	if err != nil {
		t.Fatal(err)
	}
	if len(forest.Trees) != 7 {
		t.Fatalf("expected 7 trees but got %d", len(forest.Trees))
	}
	predictions, err := forest.PredictAll(xs)
	if err != nil {
		t.Fatal(err)
	}
	correct := 0
	for i, p := range predictions {
		if p == labels[i] {
			correct++
		}
	}
	if frac := float64(correct) / float64(len(labels)); frac < 0.95 {
		t.Errorf("training accuracy was only %f", frac)
	}
}

func TestForestReproducible(t *testing.T) {
	xs, labels := synth.Blobs(rand.New(rand.NewSource(6)), 120, [][]float64{
		{0, 0}, {2, 2},
	}, 0.5)
	var forests []*Forest[float64]
	for _, concurrency := range []int{1, 8, -2} {
		builder := &ForestBuilder[float64]{
			Builder:  Builder[float64]{MaxDepth: Unbounded, Concurrency: concurrency},
			NumTrees: 5,
			Rand:     rand.New(rand.NewSource(7)),
		}
		forest, err := builder.Fit(xs, labels)
		if err != nil {
			t.Fatal(err)
		}
		forests = append(forests, forest)
	}
	for _, forest := range forests[1:] {
		if !reflect.DeepEqual(forests[0], forest) {
			t.Error("concurrency changed the fitted forest")
		}
	}
}

func TestForestValidation(t *testing.T) {
	builder := &ForestBuilder[float64]{
		Builder: Builder[float64]{MaxDepth: Unbounded},
		Rand:    rand.New(rand.NewSource(8)),
	}
	if _, err := builder.Fit([][]float64{{1}, {2}}, []int{0}); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("expected ErrInvalidDataset but got %v", err)
	}
}
