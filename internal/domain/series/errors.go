package series

import "errors"

// Sentinel kinds for series errors.
var (
	ErrSeasonMismatch = errors.New("series seasons are not aligned")
	ErrSeasonGap      = errors.New("series seasons are not consecutive")
)
