package vor

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
)

// Default scoring configuration constants.
const (
	DefaultNumTeams = 12

	// DefaultPremiumFraction is the bonus fraction of projected points added
	// for a premium position. A rough estimate: exact premium math would
	// need per-reception projections the source does not provide.
	DefaultPremiumFraction = 0.1
)

// injuryPenalties maps a designation to the fraction of value it erases.
var injuryPenalties = map[model.InjuryStatus]float64{
	model.Out:          1.0,
	model.Doubtful:     0.7,
	model.Questionable: 0.15,
	model.Probable:     0.05,
}

// Scorer computes per-player VOR against replacement baselines. A Scorer is
// stateless after construction; the same inputs always yield the same map.
type Scorer struct {
	slots    league.Slots
	numTeams int
	buffer   float64
	premiums map[model.Position]float64
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithNumTeams sets the league size used for starter demand.
func WithNumTeams(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.numTeams = n
		}
	}
}

// WithBuffer sets the replacement-level buffer fraction.
func WithBuffer(buffer float64) Option {
	return func(s *Scorer) {
		if buffer >= 0 {
			s.buffer = buffer
		}
	}
}

// WithPremium enables a positional premium: a bonus fraction of projected
// points added on top of raw VOR for that position.
func WithPremium(pos model.Position, fraction float64) Option {
	return func(s *Scorer) {
		if pos.Valid() && fraction > 0 {
			s.premiums[pos] = fraction
		}
	}
}

// NewScorer creates a Scorer for the given slot configuration.
func NewScorer(slots league.Slots, opts ...Option) *Scorer {
	s := &Scorer{
		slots:    slots,
		numTeams: DefaultNumTeams,
		buffer:   DefaultBuffer,
		premiums: make(map[model.Position]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute returns VOR keyed by player id. Players without a resolvable
// projection link score 0; every value is clamped to >= 0 because a player
// never carries negative trade value in this model.
func (s *Scorer) Compute(players []model.Player, projections []model.Projection) (map[string]float64, error) {
	baselines, err := ComputeBaselines(projections, s.slots, s.numTeams, s.buffer)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]model.Projection, len(projections))
	for _, pr := range projections {
		bySlug[pr.Slug] = pr
	}

	values := make(map[string]float64, len(players))
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		raw := 0.0
		if pr, ok := bySlug[p.ProjectionSlug]; ok && p.ProjectionSlug != "" {
			raw = pr.ROSPoints - baselines[p.Position]
			if fraction, premium := s.premiums[p.Position]; premium {
				raw += pr.ROSPoints * fraction
			}
		}
		if raw < 0 {
			raw = 0
		}
		values[p.ID] = raw
	}
	return values, nil
}

// ApplyInjuryPenalty discounts a VOR value by the fixed penalty for the
// player's injury designation. Unknown or absent designations pass the
// value through untouched. Callers apply this explicitly when they want
// injury-aware scoring; Compute never folds it in.
func ApplyInjuryPenalty(vor float64, status model.InjuryStatus) float64 {
	if penalty, ok := injuryPenalties[status]; ok {
		return vor * (1 - penalty)
	}
	return vor
}

// Rankings orders players by VOR descending within each position. Ties keep
// input order so repeated calls agree.
func Rankings(players []model.Player, values map[string]float64) map[model.Position][]model.Player {
	byPos := make(map[model.Position][]model.Player)
	for _, p := range players {
		byPos[p.Position] = append(byPos[p.Position], p)
	}
	for pos := range byPos {
		ranked := byPos[pos]
		sort.SliceStable(ranked, func(i, j int) bool {
			return values[ranked[i].ID] > values[ranked[j].ID]
		})
	}
	return byPos
}
