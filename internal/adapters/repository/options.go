package repository

import "os"

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithComma sets the field delimiter. Zero is ignored.
func WithComma(r rune) Option {
	return func(s *CSVStore) {
		if r != 0 {
			s.comma = r
		}
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode os.FileMode) Option {
	return func(s *CSVStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}
