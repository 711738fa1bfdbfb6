package mlbstats

import "errors"

// Sentinel kinds for Stats API lookups.
var (
	ErrNotFound = errors.New("not found in stats api")
)
