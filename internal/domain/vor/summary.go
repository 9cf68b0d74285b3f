package vor

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/gridiron/internal/domain/model"
)

// PositionSummary describes the VOR distribution at one position.
type PositionSummary struct {
	Position model.Position `json:"position"`
	Count    int            `json:"count"`
	Positive int            `json:"positive"`
	Mean     float64        `json:"mean"`
	StdDev   float64        `json:"std_dev"`
	Max      float64        `json:"max"`
}

// Summarize reports per-position VOR distributions, ordered by the closed
// position set. Positions with no players are omitted.
func Summarize(players []model.Player, values map[string]float64) []PositionSummary {
	byPos := make(map[model.Position][]float64)
	for _, p := range players {
		byPos[p.Position] = append(byPos[p.Position], values[p.ID])
	}

	summaries := make([]PositionSummary, 0, len(byPos))
	for _, pos := range model.Positions {
		vals, ok := byPos[pos]
		if !ok {
			continue
		}
		sort.Float64s(vals)
		positive := 0
		for _, v := range vals {
			if v > 0 {
				positive++
			}
		}
		s := PositionSummary{
			Position: pos,
			Count:    len(vals),
			Positive: positive,
			Mean:     stat.Mean(vals, nil),
			Max:      vals[len(vals)-1],
		}
		if len(vals) > 1 {
			s.StdDev = stat.StdDev(vals, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
