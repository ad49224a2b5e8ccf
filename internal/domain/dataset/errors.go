package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNoTables      = errors.New("no player tables to join")
	ErrMissingColumn = errors.New("missing required column")
)
