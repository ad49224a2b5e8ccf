package season

import "errors"

// Sentinel kinds for season errors.
var (
	ErrInvalidLabel = errors.New("invalid season label")
)
