// Package league holds roster-slot configuration for a league.
//
// Slot counts are kept as an explicit, total mapping over the closed
// position set; a position tag outside the set is an error at construction,
// never a silent zero.
package league

import (
	"fmt"

	"github.com/okian/gridiron/internal/domain/model"
)

// Default slot counts for a standard 12-team league.
const (
	defaultQB    = 1
	defaultRB    = 2
	defaultWR    = 2
	defaultTE    = 1
	defaultFlex  = 1
	defaultBench = 6
)

// Slots is a league's per-position starter configuration. FLEX slots draw
// from model.FlexEligible. SUPERFLEX is carried for completeness but not
// consumed by the lineup optimizer. Bench is irrelevant to valuation.
type Slots struct {
	QB        int `json:"qb" koanf:"qb"`
	RB        int `json:"rb" koanf:"rb"`
	WR        int `json:"wr" koanf:"wr"`
	TE        int `json:"te" koanf:"te"`
	K         int `json:"k" koanf:"k"`
	DST       int `json:"dst" koanf:"dst"`
	Flex      int `json:"flex" koanf:"flex"`
	Superflex int `json:"superflex" koanf:"superflex"`
	Bench     int `json:"bench" koanf:"bench"`
}

// DefaultSlots returns the standard configuration: 1 QB, 2 RB, 2 WR, 1 TE,
// 1 FLEX, 6 bench.
func DefaultSlots() Slots {
	return Slots{
		QB:    defaultQB,
		RB:    defaultRB,
		WR:    defaultWR,
		TE:    defaultTE,
		Flex:  defaultFlex,
		Bench: defaultBench,
	}
}

// Validate fails fast on negative counts.
func (s Slots) Validate() error {
	counts := map[string]int{
		"qb": s.QB, "rb": s.RB, "wr": s.WR, "te": s.TE,
		"k": s.K, "dst": s.DST,
		"flex": s.Flex, "superflex": s.Superflex, "bench": s.Bench,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("%w: %s slots %d", ErrInvalidSlots, name, n)
		}
	}
	return nil
}

// For returns the fixed starter count for a position in the closed set.
// FLEX and SUPERFLEX are not per-position counts and are read directly.
func (s Slots) For(pos model.Position) (int, error) {
	switch pos {
	case model.QB:
		return s.QB, nil
	case model.RB:
		return s.RB, nil
	case model.WR:
		return s.WR, nil
	case model.TE:
		return s.TE, nil
	case model.K:
		return s.K, nil
	case model.DST:
		return s.DST, nil
	}
	return 0, fmt.Errorf("%w: %q", model.ErrUnknownPosition, pos)
}

// Starters is the number of starting slots excluding bench.
func (s Slots) Starters() int {
	return s.QB + s.RB + s.WR + s.TE + s.K + s.DST + s.Flex + s.Superflex
}
