package repository

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrNotFound = errors.New("not cached")
	ErrStorage  = errors.New("cache storage failure")
)
