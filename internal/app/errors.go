package app

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidState  = errors.New("invalid service state")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownTeam   = errors.New("unknown team")
	ErrNoProjections = errors.New("no projections loaded")
)
