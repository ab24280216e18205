package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// VIF returns the variance inflation factor of every column of xs. The j-th
// result is 1/(1-R²), where R² comes from regressing column j on all other
// columns plus an intercept by least squares. A column gets +Inf when its
// regression fits exactly or when its least-squares problem is singular;
// either way the matrix contains an exact linear dependence.
//
// The matrix must be rectangular with at least two columns and more rows
// than columns.
func VIF(xs [][]float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "vif: no rows")
	}
	numCols := len(xs[0])
	if numCols < 2 {
		return nil, errors.Wrap(ErrInvalidInput, "vif: need at least two columns")
	}
	for i, row := range xs {
		if len(row) != numCols {
			return nil, errors.Wrapf(ErrInvalidInput, "vif: row %d has %d columns, expected %d",
				i, len(row), numCols)
		}
	}
	if len(xs) <= numCols {
		return nil, errors.Wrapf(ErrInvalidInput, "vif: %d rows for %d columns", len(xs), numCols)
	}

	n := len(xs)
	result := make([]float64, numCols)
	for j := range result {
		a := mat.NewDense(n, numCols, nil)
		y := mat.NewDense(n, 1, nil)
		yCol := make([]float64, n)
		for i, row := range xs {
			col := 0
			for k, v := range row {
				if k == j {
					continue
				}
				a.Set(i, col, v)
				col++
			}
			a.Set(i, numCols-1, 1)
			y.Set(i, 0, row[j])
			yCol[i] = row[j]
		}

		var coef mat.Dense
		if err := coef.Solve(a, y); err != nil {
			// The predictors themselves are exactly collinear.
			result[j] = math.Inf(1)
			continue
		}
		var pred mat.Dense
		pred.Mul(a, &coef)

		mean := stat.Mean(yCol, nil)
		var residual, spread float64
		for i, v := range yCol {
			delta := v - pred.At(i, 0)
			residual += delta * delta
			delta = v - mean
			spread += delta * delta
		}
		if spread == 0 {
			result[j] = math.Inf(1)
			continue
		}
		r2 := 1 - residual/spread
		if r2 >= 1 {
			result[j] = math.Inf(1)
		} else {
			result[j] = 1 / (1 - r2)
		}
	}
	return result, nil
}
