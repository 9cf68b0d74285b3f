// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer defaults, optional YAML file, and environment variables on load.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"runtime"

	"github.com/okian/gridiron/internal/domain/league"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite projection/mapping store.
	DBPath string `koanf:"db_path"`

	// Platform names the fantasy platform rosters come from; it scopes
	// player-identity mappings.
	Platform string `koanf:"platform"`

	// NumTeams is the league size used for starter demand.
	NumTeams int `koanf:"num_teams"`

	// BufferFraction extends starter demand when locating replacement level.
	BufferFraction float64 `koanf:"buffer_fraction"`

	// TEPremium enables the tight-end premium valuation bonus.
	TEPremium bool `koanf:"te_premium"`

	// Slots is the league's roster-slot configuration.
	Slots league.Slots `koanf:"slots"`

	// MinImprovement is the least optimal-lineup VOR gain each trade side
	// must see.
	MinImprovement float64 `koanf:"min_improvement"`

	// BalanceThreshold bounds the improvement gap for "balanced" notes.
	BalanceThreshold float64 `koanf:"balance_threshold"`

	// MaxResults caps the proposal list per analysis.
	MaxResults int `koanf:"max_results"`

	// MaxPlayersPerSide bounds trade shapes (1..5).
	MaxPlayersPerSide int `koanf:"max_players_per_side"`

	// AllowUneven enables 2-for-1 and 1-for-2 shapes.
	AllowUneven bool `koanf:"allow_uneven"`

	// WorkerCount bounds the per-opposing-roster fan-out.
	WorkerCount int `koanf:"worker_count"`

	// ResolverThreshold is the minimum fuzzy-match score for automatic
	// player-to-projection links.
	ResolverThreshold float64 `koanf:"resolver_threshold"`

	// CacheTTLHours is the lifetime of generic cache entries.
	CacheTTLHours int `koanf:"cache_ttl_hours"`

	// PurgeSchedule is the cron spec for expired-cache purges.
	PurgeSchedule string `koanf:"purge_schedule"`
}

// New creates a Config with defaults for a standard 12-team league.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		DBPath:            "gridiron.db",
		Platform:          "generic",
		NumTeams:          12,
		BufferFraction:    0.1,
		TEPremium:         false,
		Slots:             league.DefaultSlots(),
		MinImprovement:    1.0,
		BalanceThreshold:  1.0,
		MaxResults:        50,
		MaxPlayersPerSide: 2,
		AllowUneven:       true,
		WorkerCount:       runtime.NumCPU(),
		ResolverThreshold: 0.7,
		CacheTTLHours:     24,
		PurgeSchedule:     "@hourly",
	}
}
