package knn

import "errors"

var (
	// ErrInvalidDataset is returned by Fit when the training data is not a
	// non-empty rectangular matrix with exactly one label per row.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrDimension is returned by Predict when a feature vector does not
	// have the same width as the training rows.
	ErrDimension = errors.New("feature dimension mismatch")
)
