package trade

import "errors"

// Sentinel kinds for trade generation errors.
var (
	ErrInvalidRequest = errors.New("invalid trade request")
)
