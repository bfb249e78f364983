package store

import "errors"

var (
	// ErrValidation marks rejected input (bad date, out-of-range enjoyment,
	// unknown enum value).
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks lookups that matched no row.
	ErrNotFound = errors.New("not found")
)
