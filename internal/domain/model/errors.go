package model

import "errors"

// Sentinel kinds for model validation errors.
var (
	ErrUnknownPosition   = errors.New("unknown position")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidRoster     = errors.New("invalid roster")
	ErrInvalidProjection = errors.New("invalid projection")
)
