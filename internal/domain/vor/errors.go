package vor

import "errors"

// Sentinel kinds for valuation errors.
var (
	ErrInvalidInput = errors.New("invalid valuation input")
)
