// Package trade enumerates and ranks mutually beneficial trades between two
// rosters, scored by each side's optimal-lineup VOR before and after the
// swap.
//
// The search is a bounded heuristic: 1-for-1, 2-for-1, 1-for-2 and 2-for-2
// shapes over positive-VOR players, with a fixed result cap. It makes no
// claim of global optimality and never looks across more than two rosters
// at once.
package trade

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/metrics"
)

// Default analyzer configuration constants.
const (
	// DefaultMinImprovement is the least optimal-lineup VOR gain each side
	// must see before a trade is proposed.
	DefaultMinImprovement = 1.0

	// DefaultBalanceThreshold bounds the improvement gap for a trade to be
	// called balanced in its notes.
	DefaultBalanceThreshold = 1.0

	// DefaultMaxResults caps the proposal list.
	DefaultMaxResults = 50

	// MaxPlayersPerSide bounds a single trade side.
	MaxPlayersPerSide = 5

	// Scarcity thresholds count positive-VOR players at a position.
	scarcityThresholdLow = 10
	scarcityThresholdMed = 20
	scarcityBonusLow     = 0.5
	scarcityBonusMed     = 0.2
)

// TradedPlayer captures one player's side of a proposal with the VOR used
// at evaluation time.
type TradedPlayer struct {
	Player   string         `json:"player"`
	Position model.Position `json:"pos"`
	VOR      float64        `json:"vor"`
}

// Proposal is an accepted trade: both sides improve by at least the
// configured minimum.
type Proposal struct {
	AnalysisID  string         `json:"analysis_id"`
	OtherTeamID string         `json:"other_team_id"`
	Send        []TradedPlayer `json:"send"`
	Receive     []TradedPlayer `json:"receive"`
	ScoreMe     float64        `json:"score_me"`
	ScoreThem   float64        `json:"score_them"`
	Notes       string         `json:"notes"`

	// playerKey joins traded player ids for the deterministic tie-break.
	playerKey string
}

// Analyzer generates trade proposals for a league configuration. Stateless
// after construction; safe for concurrent use.
type Analyzer struct {
	slots            league.Slots
	minImprovement   float64
	balanceThreshold float64
	maxResults       int
	workers          int
	limitCheck       bool
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithMinImprovement sets the acceptance threshold for both sides.
func WithMinImprovement(v float64) Option {
	return func(a *Analyzer) {
		if v >= 0 {
			a.minImprovement = v
		}
	}
}

// WithBalanceThreshold sets the balanced-trade note threshold.
func WithBalanceThreshold(v float64) Option {
	return func(a *Analyzer) {
		if v > 0 {
			a.balanceThreshold = v
		}
	}
}

// WithMaxResults caps the returned proposal list.
func WithMaxResults(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxResults = n
		}
	}
}

// WithWorkers bounds the fan-out across opposing rosters.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithRosterLimitCheck toggles skipping trades that leave either roster
// below its required QB/RB/WR/TE counts.
func WithRosterLimitCheck(enabled bool) Option {
	return func(a *Analyzer) {
		a.limitCheck = enabled
	}
}

// NewAnalyzer creates an Analyzer for the given slot configuration.
func NewAnalyzer(slots league.Slots, opts ...Option) *Analyzer {
	a := &Analyzer{
		slots:            slots,
		minImprovement:   DefaultMinImprovement,
		balanceThreshold: DefaultBalanceThreshold,
		maxResults:       DefaultMaxResults,
		workers:          runtime.NumCPU(),
		limitCheck:       true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate enumerates trades between myRoster and every other roster and
// returns accepted proposals ordered by combined improvement descending,
// tie-broken by opposing team id and then traded player ids so repeated
// calls with identical inputs agree exactly.
func (a *Analyzer) Generate(ctx context.Context, myRoster model.Roster, allRosters []model.Roster, values map[string]float64, maxPerSide int, allowUneven bool) ([]Proposal, error) {
	if maxPerSide < 1 || maxPerSide > MaxPlayersPerSide {
		return nil, fmt.Errorf("%w: max players per side %d", ErrInvalidRequest, maxPerSide)
	}
	if err := myRoster.Validate(); err != nil {
		return nil, err
	}
	if err := a.slots.Validate(); err != nil {
		return nil, err
	}

	others := make([]model.Roster, 0, len(allRosters))
	for _, r := range allRosters {
		if r.TeamID == myRoster.TeamID {
			continue
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		others = append(others, r)
	}

	analysisID := uuid.NewString()
	scarcity := positiveVORCounts(allRosters, values)

	// Opposing rosters are independent, so fan out across a bounded set of
	// workers and merge before the final deterministic sort.
	results := make([][]Proposal, len(others))
	errs := make([]error, len(others))
	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := a.workers
	if workers > len(others) {
		workers = len(others)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = a.perRoster(analysisID, myRoster, others[i], values, scarcity, maxPerSide, allowUneven)
			}
		}()
	}
dispatch:
	for i := range others {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("trade generation interrupted: %w", err)
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var proposals []Proposal
	for _, rs := range results {
		proposals = append(proposals, rs...)
	}
	sort.SliceStable(proposals, func(i, j int) bool {
		ci := proposals[i].ScoreMe + proposals[i].ScoreThem
		cj := proposals[j].ScoreMe + proposals[j].ScoreThem
		if ci != cj {
			return ci > cj
		}
		if proposals[i].OtherTeamID != proposals[j].OtherTeamID {
			return proposals[i].OtherTeamID < proposals[j].OtherTeamID
		}
		return proposals[i].playerKey < proposals[j].playerKey
	})
	if len(proposals) > a.maxResults {
		proposals = proposals[:a.maxResults]
	}
	return proposals, nil
}

// perRoster enumerates every candidate shape against one opposing roster.
// Empty candidate pools simply produce no candidates for a shape.
func (a *Analyzer) perRoster(analysisID string, my, their model.Roster, values map[string]float64, scarcity map[model.Position]float64, maxPerSide int, allowUneven bool) ([]Proposal, error) {
	// Zero-VOR players are untradeable in this model.
	mine := positiveVORPlayers(my.Players, values)
	theirs := positiveVORPlayers(their.Players, values)

	preMine, err := lineup.OptimalVOR(my.Players, values, a.slots)
	if err != nil {
		return nil, err
	}
	preTheirs, err := lineup.OptimalVOR(their.Players, values, a.slots)
	if err != nil {
		return nil, err
	}

	eval := evaluator{
		analyzer:   a,
		analysisID: analysisID,
		my:         my,
		their:      their,
		values:     values,
		scarcity:   scarcity,
		preMine:    preMine,
		preTheirs:  preTheirs,
	}

	var proposals []Proposal
	collect := func(send, receive []model.Player) error {
		p, ok, err := eval.evaluate(send, receive)
		if err != nil {
			return err
		}
		if ok {
			proposals = append(proposals, p)
		}
		return nil
	}

	// 1-for-1.
	for _, mp := range mine {
		for _, tp := range theirs {
			if err := collect([]model.Player{mp}, []model.Player{tp}); err != nil {
				return nil, err
			}
		}
	}

	if maxPerSide >= 2 && allowUneven {
		// 2-for-1.
		for _, pair := range pairs(mine) {
			for _, tp := range theirs {
				if err := collect(pair, []model.Player{tp}); err != nil {
					return nil, err
				}
			}
		}
		// 1-for-2.
		for _, mp := range mine {
			for _, pair := range pairs(theirs) {
				if err := collect([]model.Player{mp}, pair); err != nil {
					return nil, err
				}
			}
		}
	}

	if maxPerSide >= 2 {
		// 2-for-2.
		for _, mp := range pairs(mine) {
			for _, tp := range pairs(theirs) {
				if err := collect(mp, tp); err != nil {
					return nil, err
				}
			}
		}
	}

	return proposals, nil
}

// pairs returns every unordered 2-combination, preserving input order.
func pairs(players []model.Player) [][]model.Player {
	if len(players) < 2 {
		return nil
	}
	out := make([][]model.Player, 0, len(players)*(len(players)-1)/2)
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			out = append(out, []model.Player{players[i], players[j]})
		}
	}
	return out
}

// positiveVORPlayers filters a roster to tradeable players.
func positiveVORPlayers(players []model.Player, values map[string]float64) []model.Player {
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if values[p.ID] > 0 {
			out = append(out, p)
		}
	}
	return out
}

// positiveVORCounts tallies positive-VOR players per position league-wide,
// feeding the scarcity annotation.
func positiveVORCounts(rosters []model.Roster, values map[string]float64) map[model.Position]float64 {
	counts := make(map[model.Position]int)
	for _, r := range rosters {
		for _, p := range r.Players {
			if values[p.ID] > 0 {
				counts[p.Position]++
			}
		}
	}
	bonuses := make(map[model.Position]float64, len(counts))
	for _, pos := range model.Positions {
		n := counts[pos]
		switch {
		case n < scarcityThresholdLow:
			bonuses[pos] = scarcityBonusLow
		case n < scarcityThresholdMed:
			bonuses[pos] = scarcityBonusMed
		}
	}
	return bonuses
}

// playerIDKey joins both sides' ids into a stable ordering key.
func playerIDKey(send, receive []model.Player) string {
	ids := make([]string, 0, len(send)+len(receive))
	for _, p := range send {
		ids = append(ids, p.ID)
	}
	ids = append(ids, "/")
	for _, p := range receive {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, ",")
}

// recordOutcome feeds the evaluation counters.
func recordOutcome(accepted bool) {
	metrics.RecordTradeEvaluated()
	if accepted {
		metrics.RecordTradeAccepted()
	}
}
