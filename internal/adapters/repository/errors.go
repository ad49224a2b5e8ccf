package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound    = errors.New("table not found")
	ErrMalformed   = errors.New("malformed table file")
	ErrInvalidName = errors.New("invalid table name")
)
