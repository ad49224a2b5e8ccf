package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrUnknownFormat = errors.New("unknown report format")
	ErrNoPairs       = errors.New("no metric pairs to report")
)
