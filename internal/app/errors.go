package service

import "errors"

var (
	// ErrInvalidRequest reports a card request with a bad id or date window.
	ErrInvalidRequest = errors.New("invalid card request")
	// ErrNoPitches reports a pitcher with no pitch events in the window.
	ErrNoPitches = errors.New("no pitches in window")
	// ErrSuperseded reports a render cancelled by a newer one of the same session.
	ErrSuperseded = errors.New("render superseded")
	// ErrNotStarted reports a call made before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrUpstream reports a failed pitch event fetch.
	ErrUpstream = errors.New("upstream unavailable")
	// ErrEmptyRegister reports a roster refresh with nobody to enrich.
	ErrEmptyRegister = errors.New("player register is empty")
)
