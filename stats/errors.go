package stats

import "errors"

// ErrInvalidInput is returned when a routine's numeric preconditions are not
// met, with details in the wrapping message.
var ErrInvalidInput = errors.New("invalid input")
