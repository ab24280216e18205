package stats

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareIndependence runs Pearson's chi-square test of independence on a
// contingency table of observed counts and returns the test statistic, the
// p-value, and the degrees of freedom.
//
// The table must be rectangular with at least two rows and two columns,
// non-negative counts, and no all-zero row or column.
func ChiSquareIndependence(table [][]float64) (statistic, p float64, dof int, err error) {
	if len(table) < 2 {
		return 0, 0, 0, errors.Wrap(ErrInvalidInput, "chi-square: need at least two rows")
	}
	numCols := len(table[0])
	if numCols < 2 {
		return 0, 0, 0, errors.Wrap(ErrInvalidInput, "chi-square: need at least two columns")
	}

	rowSums := make([]float64, len(table))
	colSums := make([]float64, numCols)
	var total float64
	for i, row := range table {
		if len(row) != numCols {
			return 0, 0, 0, errors.Wrapf(ErrInvalidInput, "chi-square: row %d has %d columns, expected %d",
				i, len(row), numCols)
		}
		for j, count := range row {
			if count < 0 {
				return 0, 0, 0, errors.Wrapf(ErrInvalidInput, "chi-square: negative count at (%d, %d)", i, j)
			}
			rowSums[i] += count
			colSums[j] += count
			total += count
		}
	}
	for i, sum := range rowSums {
		if sum == 0 {
			return 0, 0, 0, errors.Wrapf(ErrInvalidInput, "chi-square: row %d is all zero", i)
		}
	}
	for j, sum := range colSums {
		if sum == 0 {
			return 0, 0, 0, errors.Wrapf(ErrInvalidInput, "chi-square: column %d is all zero", j)
		}
	}

	observed := make([]float64, 0, len(table)*numCols)
	expected := make([]float64, 0, len(table)*numCols)
	for i, row := range table {
		for j, count := range row {
			observed = append(observed, count)
			expected = append(expected, rowSums[i]*colSums[j]/total)
		}
	}

	statistic = stat.ChiSquare(observed, expected)
	dof = (len(table) - 1) * (numCols - 1)
	p = distuv.ChiSquared{K: float64(dof)}.Survival(statistic)
	return statistic, p, dof, nil
}
