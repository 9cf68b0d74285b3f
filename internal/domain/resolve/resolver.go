// Package resolve links league players to external projection records by
// fuzzy name and team matching.
//
// The VOR scorer never matches names itself; it consumes the slug link this
// package produces. An unresolved player is a data gap, not an error: the
// player simply scores zero until a mapping exists.
package resolve

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/metrics"
)

// Default matching constants.
const (
	// DefaultThreshold is the least combined score an automatic match needs.
	DefaultThreshold = 0.7

	// teamBonus rewards an exact (normalized) team agreement.
	teamBonus = 0.1

	// substringScore covers nickname-vs-full-name containment.
	substringScore = 0.9

	defaultCacheSize = 4096
)

// Resolver matches league players to projection slugs.
type Resolver struct {
	threshold float64
	names     *nameCache
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithThreshold sets the minimum combined score for an automatic match.
func WithThreshold(t float64) Option {
	return func(r *Resolver) {
		if t > 0 && t <= 1 {
			r.threshold = t
		}
	}
}

// WithCacheSize bounds the name-normalization cache.
func WithCacheSize(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.names = newNameCache(n)
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		threshold: DefaultThreshold,
		names:     newNameCache(defaultCacheSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns each player's best projection slug, keyed by player id.
// Players with no acceptable match are absent from the map. A player that
// already carries a slug (e.g. a manual override from the mapping store)
// keeps it untouched.
func (r *Resolver) Resolve(players []model.Player, projections []model.Projection) map[string]string {
	links := make(map[string]string, len(players))
	for _, p := range players {
		if p.ProjectionSlug != "" {
			links[p.ID] = p.ProjectionSlug
			metrics.RecordResolverHit()
			continue
		}
		if slug, ok := r.bestMatch(p, projections); ok {
			links[p.ID] = slug
			metrics.RecordResolverHit()
		} else {
			metrics.RecordResolverMiss()
		}
	}
	return links
}

// Apply returns a copy of players with resolved slugs filled in.
func (r *Resolver) Apply(players []model.Player, projections []model.Projection) []model.Player {
	links := r.Resolve(players, projections)
	out := make([]model.Player, len(players))
	for i, p := range players {
		if slug, ok := links[p.ID]; ok {
			p.ProjectionSlug = slug
		}
		out[i] = p
	}
	return out
}

// Misses lists players that resolved to nothing, for manual mapping.
func (r *Resolver) Misses(players []model.Player, projections []model.Projection) []model.Player {
	links := r.Resolve(players, projections)
	var out []model.Player
	for _, p := range players {
		if _, ok := links[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// bestMatch scans projections for the highest-scoring candidate at the
// player's exact position.
func (r *Resolver) bestMatch(p model.Player, projections []model.Projection) (string, bool) {
	team := normalizeTeam(p.Team)
	bestScore := 0.0
	bestSlug := ""
	for _, pr := range projections {
		if pr.Position != p.Position {
			continue
		}
		score := r.nameSimilarity(p.Name, pr.Name)
		if team != "" && team == normalizeTeam(pr.Team) {
			score += teamBonus
		}
		if score >= r.threshold && score > bestScore {
			bestScore = score
			bestSlug = pr.Slug
		}
	}
	return bestSlug, bestSlug != ""
}

// nameSimilarity scores two names in [0,1]: exact normalized match, then
// substring containment for nicknames, then Levenshtein ratio.
func (r *Resolver) nameSimilarity(a, b string) float64 {
	na := r.normalizeName(a)
	nb := r.normalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return substringScore
	}
	longest := len(na)
	if len(nb) > longest {
		longest = len(nb)
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return 1 - float64(dist)/float64(longest)
}
