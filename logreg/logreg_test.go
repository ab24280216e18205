package logreg

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func separableData() ([][]float64, []int) {
	return [][]float64{{-2}, {-1.5}, {-1}, {1}, {1.5}, {2}}, []int{0, 0, 0, 1, 1, 1}
}

func TestFitSeparable(t *testing.T) {
	xs, labels := separableData()
	model, err := (&Trainer{LR: 0.5, Iters: 2000}).Fit(xs, labels)
	if err != nil {
		t.Fatal(err)
	}

	// Zero weights predict 0.5 everywhere, so the first loss is ln(2).
	if math.Abs(model.InitLoss-math.Ln2) > 1e-9 {
		t.Errorf("expected initial loss %f but got %f", math.Ln2, model.InitLoss)
	}
	if model.FinalLoss >= model.InitLoss {
		t.Errorf("loss did not improve: %f -> %f", model.InitLoss, model.FinalLoss)
	}

	predictions, err := model.PredictAll(xs)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range predictions {
		if p != labels[i] {
			t.Errorf("row %d: expected %d but got %d", i, labels[i], p)
		}
	}

	pLow, err := model.Prob([]float64{-3})
	if err != nil {
		t.Fatal(err)
	}
	pHigh, err := model.Prob([]float64{3})
	if err != nil {
		t.Fatal(err)
	}
	if pLow >= 0.5 || pHigh <= 0.5 {
		t.Errorf("expected probabilities on opposite sides of 0.5 but got %f and %f", pLow, pHigh)
	}
}

func TestFitL2ShrinksWeights(t *testing.T) {
	xs, labels := separableData()
	free, err := (&Trainer{LR: 0.5, Iters: 500}).Fit(xs, labels)
	if err != nil {
		t.Fatal(err)
	}
	decayed, err := (&Trainer{LR: 0.5, Iters: 500, L2: 0.5}).Fit(xs, labels)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(decayed.Weights[0]) >= math.Abs(free.Weights[0]) {
		t.Errorf("expected decay to shrink the weight: %f vs %f",
			decayed.Weights[0], free.Weights[0])
	}
}

func TestFitValidation(t *testing.T) {
	cases := []struct {
		Name   string
		Xs     [][]float64
		Labels []int
	}{
		{"NoRows", [][]float64{}, []int{}},
		{"NoFeatures", [][]float64{{}}, []int{0}},
		{"LengthMismatch", [][]float64{{1}, {2}}, []int{0}},
		{"RaggedRows", [][]float64{{1, 2}, {3}}, []int{0, 1}},
		{"BadLabel", [][]float64{{1}, {2}}, []int{0, 2}},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			if _, err := (&Trainer{}).Fit(c.Xs, c.Labels); !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("expected ErrInvalidDataset but got %v", err)
			}
		})
	}
}

func TestPredictDimension(t *testing.T) {
	xs, labels := separableData()
	model, err := (&Trainer{Iters: 10}).Fit(xs, labels)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := model.Prob([]float64{1, 2}); !errors.Is(err, ErrDimension) {
		t.Errorf("expected ErrDimension but got %v", err)
	}
	if _, err := model.Predict(nil); !errors.Is(err, ErrDimension) {
		t.Errorf("expected ErrDimension but got %v", err)
	}
}
