// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Position identifies a roster position from the closed set the league
// recognizes. Anything outside the set is rejected at parse time rather
// than silently treated as zero-slot.
type Position string

// The closed position set.
const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
)

// Positions lists the closed set in lineup fill order. The order matters to
// the lineup optimizer: fixed slots are filled in this sequence before FLEX.
var Positions = []Position{QB, RB, WR, TE, K, DST}

// FlexEligible lists the positions that may occupy a FLEX slot.
var FlexEligible = []Position{RB, WR, TE}

// ParsePosition normalizes a raw position tag. "DEF" and "D/ST" are common
// platform spellings for DST.
func ParsePosition(raw string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "QB":
		return QB, nil
	case "RB":
		return RB, nil
	case "WR":
		return WR, nil
	case "TE":
		return TE, nil
	case "K", "PK":
		return K, nil
	case "DST", "DEF", "D/ST":
		return DST, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
}

// Valid reports whether the position belongs to the closed set.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// IsFlexEligible reports whether the position may fill a FLEX slot.
func (p Position) IsFlexEligible() bool {
	for _, fp := range FlexEligible {
		if p == fp {
			return true
		}
	}
	return false
}

// InjuryStatus is the report designation carried by a player, if any.
type InjuryStatus string

// Known injury designations. An empty or unrecognized status leaves the
// player's value untouched.
const (
	Out          InjuryStatus = "OUT"
	Doubtful     InjuryStatus = "DOUBTFUL"
	Questionable InjuryStatus = "QUESTIONABLE"
	Probable     InjuryStatus = "PROBABLE"
)

// Player is a league-rostered player. ProjectionSlug is the optional link to
// an external projection record, produced by the identity resolver; the VOR
// scorer consumes the link and never performs matching itself.
type Player struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Position       Position     `json:"position"`
	Team           string       `json:"team"`
	ProjectionSlug string       `json:"projection_slug,omitempty"`
	ECRRank        int          `json:"ecr_rank,omitempty"`
	ROSPoints      float64      `json:"ros_points,omitempty"`
	VOR            float64      `json:"vor,omitempty"`
	InjuryStatus   InjuryStatus `json:"injury_status,omitempty"`
	ByeWeek        int          `json:"bye_week,omitempty"`
}

// Validate checks the invariants a caller-supplied player must hold.
func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing player id", ErrInvalidPlayer)
	}
	if !p.Position.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPosition, p.Position)
	}
	if p.VOR < 0 {
		return fmt.Errorf("%w: negative vor for %s", ErrInvalidPlayer, p.ID)
	}
	return nil
}

// MaxRosterSize bounds a single team's roster.
const MaxRosterSize = 25

// Roster is a team's set of players, unique by id. Ordering is irrelevant.
type Roster struct {
	TeamID  string   `json:"team_id"`
	Players []Player `json:"players"`
}

// Validate checks roster invariants: bounded size, no duplicate ids, and
// every player individually valid.
func (r Roster) Validate() error {
	if strings.TrimSpace(r.TeamID) == "" {
		return fmt.Errorf("%w: missing team id", ErrInvalidRoster)
	}
	if len(r.Players) > MaxRosterSize {
		return fmt.Errorf("%w: %d players exceeds cap of %d", ErrInvalidRoster, len(r.Players), MaxRosterSize)
	}
	seen := make(map[string]struct{}, len(r.Players))
	for _, p := range r.Players {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate player id %s", ErrInvalidRoster, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Projection is a ranked rest-of-season projection record from the external
// projection source. Staleness is the source's concern; UpdatedAt is carried
// for reporting only.
type Projection struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Position  Position  `json:"position"`
	Team      string    `json:"team"`
	Rank      int       `json:"rank"`
	ROSPoints float64   `json:"ros_points"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate rejects malformed projection records up front; they are
// configuration errors, never coerced.
func (pr Projection) Validate() error {
	if strings.TrimSpace(pr.Slug) == "" {
		return fmt.Errorf("%w: missing slug", ErrInvalidProjection)
	}
	if !pr.Position.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPosition, pr.Position)
	}
	if pr.Rank < 1 {
		return fmt.Errorf("%w: rank %d for %s", ErrInvalidProjection, pr.Rank, pr.Slug)
	}
	if pr.ROSPoints < 0 {
		return fmt.Errorf("%w: negative points for %s", ErrInvalidProjection, pr.Slug)
	}
	return nil
}
