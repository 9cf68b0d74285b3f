// Package repository persists projection records, player-identity mappings,
// and a generic TTL cache. The valuation engine never touches this package;
// the app layer loads a snapshot per analysis call and hands plain values
// down.
package repository

import (
	"context"
	"time"

	"github.com/okian/gridiron/internal/domain/model"
)

// Mapping links a platform-scoped player id to a projection slug. Manual
// overrides win over automatically resolved matches and are never replaced
// by them.
type Mapping struct {
	Platform       string    `json:"platform"`
	PlatformID     string    `json:"platform_player_id"`
	Slug           string    `json:"slug"`
	PlayerName     string    `json:"player_name"`
	Position       string    `json:"position"`
	Team           string    `json:"team"`
	ManualOverride bool      `json:"manual_override"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store provides read/write access to projections, mappings, and cache
// entries.
type Store interface {
	// UpsertProjections replaces records by slug. Malformed records fail
	// the whole batch.
	UpsertProjections(ctx context.Context, projections []model.Projection) error

	// Projections returns all records ordered by rank ascending.
	Projections(ctx context.Context) ([]model.Projection, error)

	// ProjectionCount returns the number of stored projection records.
	ProjectionCount(ctx context.Context) (int, error)

	// SaveMapping stores a player mapping. Automatic mappings do not
	// displace manual overrides.
	SaveMapping(ctx context.Context, m Mapping) error

	// Mappings returns platform id -> slug for one platform.
	Mappings(ctx context.Context, platform string) (map[string]string, error)

	// SetCache stores a value under key with a TTL.
	SetCache(ctx context.Context, key, value string, ttl time.Duration) error

	// GetCache returns the value for key, or ErrNotFound if absent or
	// expired.
	GetCache(ctx context.Context, key string) (string, error)

	// PurgeExpired removes expired cache entries and reports how many.
	PurgeExpired(ctx context.Context) (int64, error)

	// Close releases the underlying database handle.
	Close() error
}
