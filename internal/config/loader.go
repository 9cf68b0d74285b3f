package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GRIDIRON_CONFIG is set
//  3. env (prefix GRIDIRON_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GRIDIRON_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GRIDIRON_ADDR, GRIDIRON_NUM_TEAMS, ...
	// Nested keys use double underscores: GRIDIRON_SLOTS__QB -> slots.qb.
	envProvider := env.Provider("GRIDIRON_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "GRIDIRON_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on out-of-range values; nothing is silently coerced.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DBPath == "":
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	case c.NumTeams <= 0:
		return fmt.Errorf("%w: num_teams %d", ErrInvalidConfig, c.NumTeams)
	case c.BufferFraction < 0:
		return fmt.Errorf("%w: buffer_fraction %f", ErrInvalidConfig, c.BufferFraction)
	case c.MinImprovement < 0:
		return fmt.Errorf("%w: min_improvement %f", ErrInvalidConfig, c.MinImprovement)
	case c.BalanceThreshold <= 0:
		return fmt.Errorf("%w: balance_threshold %f", ErrInvalidConfig, c.BalanceThreshold)
	case c.MaxResults <= 0:
		return fmt.Errorf("%w: max_results %d", ErrInvalidConfig, c.MaxResults)
	case c.MaxPlayersPerSide < 1 || c.MaxPlayersPerSide > 5:
		return fmt.Errorf("%w: max_players_per_side %d", ErrInvalidConfig, c.MaxPlayersPerSide)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count %d", ErrInvalidConfig, c.WorkerCount)
	case c.ResolverThreshold <= 0 || c.ResolverThreshold > 1:
		return fmt.Errorf("%w: resolver_threshold %f", ErrInvalidConfig, c.ResolverThreshold)
	case c.CacheTTLHours <= 0:
		return fmt.Errorf("%w: cache_ttl_hours %d", ErrInvalidConfig, c.CacheTTLHours)
	case c.PurgeSchedule == "":
		return fmt.Errorf("%w: purge_schedule must not be empty", ErrInvalidConfig)
	}
	if err := c.Slots.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
