package trade

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/gridiron/internal/domain/model"
)

// buildNotes produces the deterministic rule-based rationale for a proposal.
// Rules fire in a fixed order: same-position swap, thin-market annotation,
// balance, shared-team bye warning. The balance rule always contributes, so
// no proposal ships without a rationale.
func (a *Analyzer) buildNotes(send, receive []model.Player, myGain, theirGain float64, scarcity map[model.Position]float64) string {
	var notes []string

	if sent, ok := uniformPosition(send); ok {
		if recv, ok := uniformPosition(receive); ok && sent != recv {
			notes = append(notes, fmt.Sprintf("You get %s help, they get %s depth", recv, sent))
		}
	}

	for _, pos := range receivedScarcePositions(receive, scarcity) {
		notes = append(notes, fmt.Sprintf("Thin market at %s", pos))
	}

	switch {
	case math.Abs(myGain-theirGain) < a.balanceThreshold:
		notes = append(notes, "Balanced trade benefits both teams equally")
	case myGain > theirGain:
		notes = append(notes, "Slight advantage to you")
	default:
		notes = append(notes, "Slight advantage to them")
	}

	if sharesTeam(send, receive) {
		notes = append(notes, "Watch for bye week conflicts")
	}

	return strings.Join(notes, "; ")
}

// uniformPosition reports the single position shared by all players, if any.
func uniformPosition(players []model.Player) (model.Position, bool) {
	if len(players) == 0 {
		return "", false
	}
	pos := players[0].Position
	for _, p := range players[1:] {
		if p.Position != pos {
			return "", false
		}
	}
	return pos, true
}

// receivedScarcePositions lists, in closed-set order, the distinct received
// positions the league is thin at.
func receivedScarcePositions(receive []model.Player, scarcity map[model.Position]float64) []model.Position {
	seen := make(map[model.Position]struct{})
	for _, p := range receive {
		if scarcity[p.Position] > 0 {
			seen[p.Position] = struct{}{}
		}
	}
	var out []model.Position
	for _, pos := range model.Positions {
		if _, ok := seen[pos]; ok {
			out = append(out, pos)
		}
	}
	return out
}

// sharesTeam reports whether any NFL team appears on both sides, which
// concentrates bye-week exposure for both fantasy rosters.
func sharesTeam(send, receive []model.Player) bool {
	teams := make(map[string]struct{}, len(send))
	for _, p := range send {
		if p.Team != "" {
			teams[p.Team] = struct{}{}
		}
	}
	for _, p := range receive {
		if _, ok := teams[p.Team]; ok && p.Team != "" {
			return true
		}
	}
	return false
}
