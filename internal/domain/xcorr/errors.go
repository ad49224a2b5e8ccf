package xcorr

import "errors"

// Sentinel kinds for correlation errors.
var (
	ErrInvalidLength = errors.New("series lengths must be equal and non-zero")
)
