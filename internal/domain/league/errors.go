package league

import "errors"

// Sentinel kinds for league configuration errors.
var (
	ErrInvalidSlots = errors.New("invalid roster slots")
)
