package provider

import "errors"

// Sentinel kinds for upstream failures.
var (
	ErrRequest = errors.New("upstream request failed")
	ErrStatus  = errors.New("upstream returned non-2xx status")
	ErrDecode  = errors.New("upstream payload could not be decoded")
)
