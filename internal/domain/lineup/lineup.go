// Package lineup selects the VOR-maximizing feasible starting lineup for a
// pool of players under fixed per-position slots plus shared FLEX slots.
//
// Greedy fill is exact for this slot model: fixed-position slots are
// disjoint, and FLEX only draws from the leftover flex-eligible pool, so
// taking the top players per partition and then the top leftovers can never
// be beaten by another assignment. SUPERFLEX slots are configured but not
// consumed here.
package lineup

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
)

// OptimalVOR returns the summed VOR of the best feasible starting lineup.
// Players absent from values count as 0. Slots that cannot be filled are
// left empty; that is a legitimate (if weak) lineup, not an error.
func OptimalVOR(players []model.Player, values map[string]float64, slots league.Slots) (float64, error) {
	if err := slots.Validate(); err != nil {
		return 0, err
	}

	byPos := make(map[model.Position][]model.Player)
	for _, p := range players {
		if !p.Position.Valid() {
			return 0, model.ErrUnknownPosition
		}
		byPos[p.Position] = append(byPos[p.Position], p)
	}
	for pos := range byPos {
		ranked := byPos[pos]
		sort.SliceStable(ranked, func(i, j int) bool {
			return values[ranked[i].ID] > values[ranked[j].ID]
		})
	}

	total := 0.0
	used := make(map[string]struct{}, slots.Starters())

	// Fixed slots first, in the defined priority order.
	for _, pos := range model.Positions {
		count, err := slots.For(pos)
		if err != nil {
			return 0, err
		}
		for _, p := range byPos[pos] {
			if count == 0 {
				break
			}
			if _, taken := used[p.ID]; taken {
				continue
			}
			used[p.ID] = struct{}{}
			total += values[p.ID]
			count--
		}
	}

	// FLEX takes the best leftovers across eligible positions.
	var flexPool []model.Player
	for _, pos := range model.FlexEligible {
		for _, p := range byPos[pos] {
			if _, taken := used[p.ID]; !taken {
				flexPool = append(flexPool, p)
			}
		}
	}
	sort.SliceStable(flexPool, func(i, j int) bool {
		return values[flexPool[i].ID] > values[flexPool[j].ID]
	})
	for i := 0; i < slots.Flex && i < len(flexPool); i++ {
		used[flexPool[i].ID] = struct{}{}
		total += values[flexPool[i].ID]
	}

	return total, nil
}
