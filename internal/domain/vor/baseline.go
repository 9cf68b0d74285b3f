// Package vor computes value-over-replacement for rostered players.
//
// VOR is a player's projected rest-of-season points minus the points of the
// replacement-level player at the same position, where replacement level is
// derived from league-wide starter demand. The package is pure: every
// function is a deterministic computation over its inputs with no I/O.
package vor

import (
	"fmt"
	"sort"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
)

// DefaultBuffer extends starter demand when locating the replacement index,
// so the baseline lands a little below the last nominal starter.
const DefaultBuffer = 0.1

// ComputeBaselines returns the replacement-level points for every position
// in the closed set. Positions with no projected players get 0, which is a
// data gap, not an error.
//
// Starter demand for a position is (fixedSlots + flexShare) * numTeams,
// where flexShare apportions FLEX slots evenly by integer division among
// flex-eligible positions. The division drops remainder slots, slightly
// under-counting total flex capacity; a known approximation, kept so
// baselines stay stable across slot configurations.
func ComputeBaselines(projections []model.Projection, slots league.Slots, numTeams int, buffer float64) (map[model.Position]float64, error) {
	if numTeams <= 0 {
		return nil, fmt.Errorf("%w: num teams %d", ErrInvalidInput, numTeams)
	}
	if buffer < 0 {
		return nil, fmt.Errorf("%w: buffer %f", ErrInvalidInput, buffer)
	}
	if err := slots.Validate(); err != nil {
		return nil, err
	}
	for _, pr := range projections {
		if err := pr.Validate(); err != nil {
			return nil, err
		}
	}

	byPos := groupProjections(projections)

	baselines := make(map[model.Position]float64, len(model.Positions))
	for _, pos := range model.Positions {
		fixed, err := slots.For(pos)
		if err != nil {
			return nil, err
		}
		flexShare := 0
		if pos.IsFlexEligible() {
			flexShare = slots.Flex / len(model.FlexEligible)
		}
		demand := (fixed + flexShare) * numTeams
		baselines[pos] = positionBaseline(byPos[pos], demand, buffer)
	}
	return baselines, nil
}

// groupProjections partitions projections by position and orders each
// partition by points descending. The sort is stable so equal-point players
// keep their input order.
func groupProjections(projections []model.Projection) map[model.Position][]model.Projection {
	byPos := make(map[model.Position][]model.Projection)
	for _, pr := range projections {
		byPos[pr.Position] = append(byPos[pr.Position], pr)
	}
	for pos := range byPos {
		ranked := byPos[pos]
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].ROSPoints > ranked[j].ROSPoints
		})
	}
	return byPos
}

// positionBaseline picks the replacement-level points from a descending
// ranked list. When demand reaches past the list, the shallowest available
// player stands in for replacement level.
func positionBaseline(ranked []model.Projection, demand int, buffer float64) float64 {
	if len(ranked) == 0 {
		return 0
	}
	idx := int(float64(demand) * (1 + buffer))
	if idx < len(ranked) {
		return ranked[idx].ROSPoints
	}
	return ranked[len(ranked)-1].ROSPoints
}
