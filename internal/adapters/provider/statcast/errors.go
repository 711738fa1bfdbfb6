package statcast

import "errors"

// Sentinel kinds for Statcast ingestion.
var (
	ErrMissingColumn = errors.New("statcast csv is missing a required column")
	ErrInvalidQuery  = errors.New("invalid statcast query")
)
