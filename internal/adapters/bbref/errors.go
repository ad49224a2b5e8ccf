package bbref

import "errors"

// Sentinel kinds for scraper errors.
var (
	ErrFetch         = errors.New("fetch season page")
	ErrTableNotFound = errors.New("stats table not found")
	ErrUnknownKind   = errors.New("unknown table kind")
)
