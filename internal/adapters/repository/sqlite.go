package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/metrics"
)

// SQLite connection constants.
const (
	defaultBusyTimeoutMS = 5000
	pingTimeout          = 5 * time.Second
	dirPerm              = 0o755
)

const schema = `
CREATE TABLE IF NOT EXISTS projections (
	slug        TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	position    TEXT NOT NULL,
	team        TEXT NOT NULL,
	rank        INTEGER NOT NULL,
	ros_points  REAL NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS player_mappings (
	platform           TEXT NOT NULL,
	platform_player_id TEXT NOT NULL,
	slug               TEXT NOT NULL,
	player_name        TEXT NOT NULL,
	position           TEXT NOT NULL,
	team               TEXT NOT NULL,
	manual_override    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at         TIMESTAMP NOT NULL,
	PRIMARY KEY (platform, platform_player_id)
);

CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db            *sql.DB
	path          string
	busyTimeoutMS int
}

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithBusyTimeout sets the SQLite busy timeout.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.busyTimeoutMS = int(d.Milliseconds())
		}
	}
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists. Use ":memory:" for tests.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{path: path, busyTimeoutMS: defaultBusyTimeoutMS}
	for _, opt := range opts {
		opt(s)
	}

	if path != ":memory:" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), dirPerm); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		s.path = abs
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", s.path, s.busyTimeoutMS)
	if s.path == ":memory:" {
		dsn = "file::memory:?mode=memory&cache=shared"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// The driver serializes writes; a single writer connection avoids
	// SQLITE_BUSY under concurrent upserts.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	return s, nil
}

// UpsertProjections replaces records by slug within one transaction.
func (s *SQLiteStore) UpsertProjections(ctx context.Context, projections []model.Projection) error {
	for _, pr := range projections {
		if err := pr.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projections (slug, name, position, team, rank, ros_points, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			position = excluded.position,
			team = excluded.team,
			rank = excluded.rank,
			ros_points = excluded.ros_points,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, pr := range projections {
		updated := pr.UpdatedAt
		if updated.IsZero() {
			updated = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, pr.Slug, pr.Name, string(pr.Position), pr.Team, pr.Rank, pr.ROSPoints, updated); err != nil {
			return fmt.Errorf("upsert projection %s: %w", pr.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}

	if n, err := s.ProjectionCount(ctx); err == nil {
		metrics.UpdateProjectionCount(n)
	}
	return nil
}

// Projections returns all records ordered by rank ascending.
func (s *SQLiteStore) Projections(ctx context.Context) ([]model.Projection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, name, position, team, rank, ros_points, updated_at
		FROM projections ORDER BY rank ASC`)
	if err != nil {
		return nil, fmt.Errorf("query projections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Projection
	for rows.Next() {
		var pr model.Projection
		var pos string
		if err := rows.Scan(&pr.Slug, &pr.Name, &pos, &pr.Team, &pr.Rank, &pr.ROSPoints, &pr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		pr.Position = model.Position(pos)
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projections: %w", err)
	}
	return out, nil
}

// ProjectionCount returns the number of stored projection records.
func (s *SQLiteStore) ProjectionCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projections`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projections: %w", err)
	}
	return n, nil
}

// SaveMapping stores a mapping. An automatic mapping never displaces a
// manual override; a manual override always wins.
func (s *SQLiteStore) SaveMapping(ctx context.Context, m Mapping) error {
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO player_mappings
			(platform, platform_player_id, slug, player_name, position, team, manual_override, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(platform, platform_player_id) DO UPDATE SET
			slug = excluded.slug,
			player_name = excluded.player_name,
			position = excluded.position,
			team = excluded.team,
			manual_override = excluded.manual_override,
			created_at = excluded.created_at
		WHERE player_mappings.manual_override = FALSE OR excluded.manual_override = TRUE`,
		m.Platform, m.PlatformID, m.Slug, m.PlayerName, m.Position, m.Team, m.ManualOverride, created)
	if err != nil {
		return fmt.Errorf("save mapping %s/%s: %w", m.Platform, m.PlatformID, err)
	}
	return nil
}

// Mappings returns platform id -> slug for one platform.
func (s *SQLiteStore) Mappings(ctx context.Context, platform string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT platform_player_id, slug FROM player_mappings WHERE platform = ?`, platform)
	if err != nil {
		return nil, fmt.Errorf("query mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var id, slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		out[id] = slug
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mappings: %w", err)
	}
	return out, nil
}

// SetCache stores a value under key with a TTL.
func (s *SQLiteStore) SetCache(ctx context.Context, key, value string, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		key, value, now.Add(ttl), now)
	if err != nil {
		return fmt.Errorf("set cache %s: %w", key, err)
	}
	return nil
}

// GetCache returns the value for key if present and unexpired.
func (s *SQLiteStore) GetCache(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM cache_entries WHERE key = ? AND expires_at > ?`,
		key, time.Now().UTC()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("cache key %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get cache %s: %w", key, err)
	}
	return value, nil
}

// PurgeExpired removes expired cache entries.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge cache rows: %w", err)
	}
	metrics.RecordCachePurge(n)
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
