// Package logreg fits binary logistic regression models with full-batch
// gradient descent on the mean log loss.
package logreg

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// A Trainer configures gradient descent.
type Trainer struct {
	// LR is the step size. Values <= 0 behave as 0.1.
	LR float64

	// Iters is the number of full-batch gradient steps. Values <= 0 behave
	// as 100.
	Iters int

	// L2 is the weight decay coefficient. Zero disables the penalty, which
	// lets weights grow without bound on separable data.
	L2 float64

	// Verbose, if true, logs the loss every 100 iterations.
	Verbose bool
}

// A Model is a fitted logistic regression.
//
// InitLoss and FinalLoss record the mean log loss before the first and last
// gradient steps.
type Model struct {
	Weights []float64
	Bias    float64

	InitLoss  float64
	FinalLoss float64
}

// Fit runs gradient descent from zero weights.
//
// The dataset must be rectangular with at least one row and one column and
// exactly one label per row, and every label must be 0 or 1; anything else
// fails with ErrInvalidDataset.
func (t *Trainer) Fit(xs [][]float64, labels []int) (*Model, error) {
	if len(xs) == 0 {
		return nil, errors.Wrap(ErrInvalidDataset, "fit logistic regression: no rows")
	}
	if len(xs) != len(labels) {
		return nil, errors.Wrapf(ErrInvalidDataset, "fit logistic regression: %d rows but %d labels",
			len(xs), len(labels))
	}
	numFeatures := len(xs[0])
	if numFeatures == 0 {
		return nil, errors.Wrap(ErrInvalidDataset, "fit logistic regression: rows have no features")
	}
	for i, row := range xs {
		if len(row) != numFeatures {
			return nil, errors.Wrapf(ErrInvalidDataset,
				"fit logistic regression: row %d has %d features, expected %d",
				i, len(row), numFeatures)
		}
		if labels[i] != 0 && labels[i] != 1 {
			return nil, errors.Wrapf(ErrInvalidDataset,
				"fit logistic regression: label %d at row %d is not 0 or 1", labels[i], i)
		}
	}

	lr := t.LR
	if lr <= 0 {
		lr = 0.1
	}
	iters := t.Iters
	if iters <= 0 {
		iters = 100
	}

	weights := make([]float64, numFeatures)
	var bias float64
	n := float64(len(xs))
	grad := make([]float64, numFeatures)
	var initLoss, finalLoss float64

	for iter := 0; iter < iters; iter++ {
		for i := range grad {
			grad[i] = 0
		}
		var biasGrad, totalLoss float64
		for i, row := range xs {
			p := sigmoid(floats.Dot(weights, row) + bias)
			y := float64(labels[i])
			diff := p - y
			floats.AddScaled(grad, diff, row)
			biasGrad += diff
			totalLoss -= y*math.Log(clampProb(p)) + (1-y)*math.Log(clampProb(1-p))
		}
		totalLoss /= n
		if iter == 0 {
			initLoss = totalLoss
		}
		if iter == iters-1 {
			finalLoss = totalLoss
		}
		if t.Verbose && iter%100 == 0 {
			log.Printf("iter=%d loss=%f", iter, totalLoss)
		}

		for j := range weights {
			weights[j] -= lr * (grad[j]/n + t.L2*weights[j])
		}
		bias -= lr * biasGrad / n
	}

	return &Model{
		Weights:   weights,
		Bias:      bias,
		InitLoss:  initLoss,
		FinalLoss: finalLoss,
	}, nil
}

// Prob returns the model's probability that x has label 1. It fails with
// ErrDimension if x does not have the same width as the training rows.
func (m *Model) Prob(x []float64) (float64, error) {
	if len(x) != len(m.Weights) {
		return 0, errors.Wrapf(ErrDimension, "prob: vector has %d features, model expects %d",
			len(x), len(m.Weights))
	}
	return sigmoid(floats.Dot(m.Weights, x) + m.Bias), nil
}

// Predict returns 1 when Prob(x) is at least 0.5.
func (m *Model) Predict(x []float64) (int, error) {
	p, err := m.Prob(x)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

// PredictAll predicts a label for every vector in xs.
func (m *Model) PredictAll(xs [][]float64) ([]int, error) {
	result := make([]int, len(xs))
	for i, x := range xs {
		label, err := m.Predict(x)
		if err != nil {
			return nil, err
		}
		result[i] = label
	}
	return result, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// clampProb keeps probabilities away from 0 and 1 so the log loss stays
// finite when the model saturates.
func clampProb(p float64) float64 {
	const eps = 1e-12
	return math.Min(math.Max(p, eps), 1-eps)
}
