package trade

import (
	"math"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/model"
)

// evaluator carries the per-opposing-roster state shared by every candidate
// against that roster, so pre-trade lineups are computed once.
type evaluator struct {
	analyzer   *Analyzer
	analysisID string
	my         model.Roster
	their      model.Roster
	values     map[string]float64
	scarcity   map[model.Position]float64
	preMine    float64
	preTheirs  float64
}

// evaluate scores one candidate. It returns ok=false for candidates that
// fail the threshold or the roster-limit check; only malformed inputs are
// errors.
func (e *evaluator) evaluate(send, receive []model.Player) (Proposal, bool, error) {
	myPost := swapPlayers(e.my.Players, send, receive)
	theirPost := swapPlayers(e.their.Players, receive, send)

	if e.analyzer.limitCheck &&
		(!coversRequiredSlots(myPost, e.analyzer.slots) || !coversRequiredSlots(theirPost, e.analyzer.slots)) {
		recordOutcome(false)
		return Proposal{}, false, nil
	}

	postMine, err := lineup.OptimalVOR(myPost, e.values, e.analyzer.slots)
	if err != nil {
		return Proposal{}, false, err
	}
	postTheirs, err := lineup.OptimalVOR(theirPost, e.values, e.analyzer.slots)
	if err != nil {
		return Proposal{}, false, err
	}

	myGain := postMine - e.preMine
	theirGain := postTheirs - e.preTheirs
	if myGain < e.analyzer.minImprovement || theirGain < e.analyzer.minImprovement {
		recordOutcome(false)
		return Proposal{}, false, nil
	}

	p := Proposal{
		AnalysisID:  e.analysisID,
		OtherTeamID: e.their.TeamID,
		Send:        tradedPlayers(send, e.values),
		Receive:     tradedPlayers(receive, e.values),
		ScoreMe:     round1(myGain),
		ScoreThem:   round1(theirGain),
		Notes:       e.analyzer.buildNotes(send, receive, myGain, theirGain, e.scarcity),
		playerKey:   playerIDKey(send, receive),
	}
	recordOutcome(true)
	return p, true, nil
}

// swapPlayers removes outgoing players by id and appends incoming ones.
// Removal is by id collision, so an incoming player with an id already on
// the roster displaces the existing entry instead of duplicating it.
func swapPlayers(roster, outgoing, incoming []model.Player) []model.Player {
	drop := make(map[string]struct{}, len(outgoing)+len(incoming))
	for _, p := range outgoing {
		drop[p.ID] = struct{}{}
	}
	for _, p := range incoming {
		drop[p.ID] = struct{}{}
	}
	out := make([]model.Player, 0, len(roster)+len(incoming))
	for _, p := range roster {
		if _, gone := drop[p.ID]; !gone {
			out = append(out, p)
		}
	}
	return append(out, incoming...)
}

// coversRequiredSlots reports whether a roster still holds at least the
// required starter count at each fixed skill position.
func coversRequiredSlots(players []model.Player, slots league.Slots) bool {
	counts := make(map[model.Position]int)
	for _, p := range players {
		counts[p.Position]++
	}
	for _, pos := range []model.Position{model.QB, model.RB, model.WR, model.TE} {
		required, err := slots.For(pos)
		if err != nil || counts[pos] < required {
			return false
		}
	}
	return true
}

func tradedPlayers(players []model.Player, values map[string]float64) []TradedPlayer {
	out := make([]TradedPlayer, len(players))
	for i, p := range players {
		out[i] = TradedPlayer{Player: p.Name, Position: p.Position, VOR: values[p.ID]}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
