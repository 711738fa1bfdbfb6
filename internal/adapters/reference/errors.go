package reference

import "errors"

// Sentinel kinds for reference table loading.
var (
	ErrUnsupportedFormat = errors.New("unsupported reference file format")
	ErrMissingColumn     = errors.New("reference table is missing a required column")
)
