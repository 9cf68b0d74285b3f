// Package app wires the domain components into a single service facade used
// by the HTTP adapter and the command entrypoint.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/resolve"
	"github.com/okian/gridiron/internal/domain/trade"
	"github.com/okian/gridiron/internal/domain/vor"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// RankedPlayer pairs a player with the VOR used to rank them.
type RankedPlayer struct {
	model.Player
	VOR float64 `json:"vor"`
}

// RankingsReport holds per-position rankings plus distribution summaries.
type RankingsReport struct {
	Positions map[model.Position][]RankedPlayer `json:"positions"`
	Summary   []vor.PositionSummary             `json:"summary"`
}

// Service owns the projection store, the identity resolver, the VOR scorer,
// and the trade analyzer. Rosters live in memory: they are platform state
// pushed by the caller per session, not data this service is authoritative
// for.
type Service struct {
	cfg      *config.Config
	store    repository.Store
	resolver *resolve.Resolver
	scorer   *vor.Scorer
	analyzer *trade.Analyzer
	cron     *cron.Cron
	log      logger.Logger

	mu      sync.RWMutex
	rosters map[string]model.Roster
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore overrides the backing store, mainly for tests.
func WithStore(s repository.Store) Option {
	return func(svc *Service) {
		if s != nil {
			svc.store = s
		}
	}
}

// WithResolver overrides the identity resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(svc *Service) {
		if r != nil {
			svc.resolver = r
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

// New creates a Service from config, opening the SQLite store unless one is
// injected.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidState)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	svc := &Service{
		cfg:     cfg,
		rosters: make(map[string]model.Roster),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.log == nil {
		svc.log = logger.Named("app")
	}

	if svc.store == nil {
		store, err := repository.NewSQLiteStore(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		svc.store = store
	}
	if svc.resolver == nil {
		svc.resolver = resolve.New(resolve.WithThreshold(cfg.ResolverThreshold))
	}

	scorerOpts := []vor.Option{
		vor.WithNumTeams(cfg.NumTeams),
		vor.WithBuffer(cfg.BufferFraction),
	}
	if cfg.TEPremium {
		scorerOpts = append(scorerOpts, vor.WithPremium(model.TE, vor.DefaultPremiumFraction))
	}
	svc.scorer = vor.NewScorer(cfg.Slots, scorerOpts...)

	svc.analyzer = trade.NewAnalyzer(cfg.Slots,
		trade.WithMinImprovement(cfg.MinImprovement),
		trade.WithBalanceThreshold(cfg.BalanceThreshold),
		trade.WithMaxResults(cfg.MaxResults),
		trade.WithWorkers(cfg.WorkerCount),
	)

	return svc, nil
}

// Start schedules background maintenance. Safe to call once.
func (s *Service) Start(ctx context.Context) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cfg.PurgeSchedule, func() {
		purgeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := s.store.PurgeExpired(purgeCtx)
		if err != nil {
			s.log.Warn(purgeCtx, "cache purge failed", logger.Error(err))
			return
		}
		if n > 0 {
			s.log.Info(purgeCtx, "cache purged", logger.Any("entries", n))
		}
	})
	if err != nil {
		return fmt.Errorf("%w: purge schedule: %w", ErrInvalidState, err)
	}
	s.cron.Start()
	s.log.Info(ctx, "service started",
		logger.Int("num_teams", s.cfg.NumTeams),
		logger.String("platform", s.cfg.Platform))
	return nil
}

// Stop halts background jobs and closes the store.
func (s *Service) Stop(ctx context.Context) error {
	if s.cron != nil {
		stopped := s.cron.Stop()
		select {
		case <-stopped.Done():
		case <-ctx.Done():
		}
	}
	err := s.store.Close()
	s.log.Info(ctx, "service stopped")
	return err
}

// baselinesCacheKey holds the serialized baseline map; baselines depend only
// on stored projections and league config, so the entry stays valid until the
// next projection update.
const baselinesCacheKey = "baselines"

// UpdateProjections replaces stored projection records by slug.
func (s *Service) UpdateProjections(ctx context.Context, projections []model.Projection) error {
	if len(projections) == 0 {
		return fmt.Errorf("%w: empty projection batch", ErrInvalidInput)
	}
	if err := s.store.UpsertProjections(ctx, projections); err != nil {
		return err
	}
	// The store has no delete; an already-expired write invalidates the key.
	_ = s.store.SetCache(ctx, baselinesCacheKey, "", -time.Second)
	s.log.Info(ctx, "projections updated", logger.Int("count", len(projections)))
	return nil
}

// RegisterRoster validates and stores one team's roster, resolving players to
// projection records. Resolved links persist as platform mappings so later
// sessions skip the fuzzy pass; manual overrides in the store always win.
func (s *Service) RegisterRoster(ctx context.Context, roster model.Roster) error {
	if err := roster.Validate(); err != nil {
		return err
	}

	projections, err := s.store.Projections(ctx)
	if err != nil {
		return err
	}
	mapped, err := s.applyMappings(ctx, roster.Players)
	if err != nil {
		return err
	}
	resolved := s.resolver.Apply(mapped, projections)
	for _, p := range resolved {
		if p.ProjectionSlug == "" {
			s.log.Warn(ctx, "player unresolved",
				logger.String("team", roster.TeamID),
				logger.String("player", p.Name))
			continue
		}
		m := repository.Mapping{
			Platform:   s.cfg.Platform,
			PlatformID: p.ID,
			Slug:       p.ProjectionSlug,
			PlayerName: p.Name,
			Position:   string(p.Position),
			Team:       p.Team,
		}
		if err := s.store.SaveMapping(ctx, m); err != nil {
			return err
		}
	}
	roster.Players = resolved

	s.mu.Lock()
	s.rosters[roster.TeamID] = roster
	count := len(s.rosters)
	s.mu.Unlock()
	metrics.UpdateRosterCount(count)

	s.log.Info(ctx, "roster registered",
		logger.String("team", roster.TeamID),
		logger.Int("players", len(roster.Players)))
	return nil
}

// Rosters returns a snapshot of all registered rosters.
func (s *Service) Rosters() []model.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Roster, 0, len(s.rosters))
	for _, r := range s.rosters {
		out = append(out, r)
	}
	return out
}

// Rankings scores every rostered player and returns per-position rankings
// with distribution summaries.
func (s *Service) Rankings(ctx context.Context) (*RankingsReport, error) {
	players, values, err := s.scoreAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &RankingsReport{
		Positions: make(map[model.Position][]RankedPlayer),
		Summary:   vor.Summarize(players, values),
	}
	for pos, ranked := range vor.Rankings(players, values) {
		entries := make([]RankedPlayer, len(ranked))
		for i, p := range ranked {
			entries[i] = RankedPlayer{Player: p, VOR: values[p.ID]}
		}
		report.Positions[pos] = entries
	}
	return report, nil
}

// Baselines reports replacement-level points per position for the configured
// league, serving from the TTL cache when the projection set has not changed.
func (s *Service) Baselines(ctx context.Context) (map[model.Position]float64, error) {
	if raw, err := s.store.GetCache(ctx, baselinesCacheKey); err == nil {
		var cached map[model.Position]float64
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
	}

	projections, err := s.store.Projections(ctx)
	if err != nil {
		return nil, err
	}
	baselines, err := vor.ComputeBaselines(projections, s.cfg.Slots, s.cfg.NumTeams, s.cfg.BufferFraction)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(baselines); err == nil {
		ttl := time.Duration(s.cfg.CacheTTLHours) * time.Hour
		if err := s.store.SetCache(ctx, baselinesCacheKey, string(raw), ttl); err != nil {
			s.log.Warn(ctx, "baseline cache write failed", logger.Error(err))
		}
	}
	return baselines, nil
}

// Trades runs a full trade analysis for one team against every other
// registered roster.
func (s *Service) Trades(ctx context.Context, teamID string, maxPerSide int, allowUneven bool) ([]trade.Proposal, error) {
	s.mu.RLock()
	mine, ok := s.rosters[teamID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, teamID)
	}

	_, values, err := s.scoreAll(ctx)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	proposals, err := s.analyzer.Generate(ctx, mine, s.Rosters(), values, maxPerSide, allowUneven)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(started)
	metrics.RecordAnalysis(float64(elapsed.Milliseconds()))
	s.log.Info(ctx, "trade analysis complete",
		logger.String("team", teamID),
		logger.Int("proposals", len(proposals)),
		logger.Any("elapsed", elapsed))
	return proposals, nil
}

// GetStats returns service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	rosterCount := len(s.rosters)
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	projectionCount, err := s.store.ProjectionCount(ctx)
	if err != nil {
		projectionCount = -1
	}

	return map[string]interface{}{
		"platform":    s.cfg.Platform,
		"num_teams":   s.cfg.NumTeams,
		"rosters":     rosterCount,
		"projections": projectionCount,
	}
}

// scoreAll computes injury-adjusted VOR for every rostered player.
func (s *Service) scoreAll(ctx context.Context) ([]model.Player, map[string]float64, error) {
	projections, err := s.store.Projections(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(projections) == 0 {
		return nil, nil, ErrNoProjections
	}

	var players []model.Player
	for _, r := range s.Rosters() {
		players = append(players, r.Players...)
	}

	values, err := s.scorer.Compute(players, projections)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range players {
		values[p.ID] = vor.ApplyInjuryPenalty(values[p.ID], p.InjuryStatus)
	}
	return players, values, nil
}

// applyMappings fills projection slugs from stored platform mappings before
// any fuzzy matching runs.
func (s *Service) applyMappings(ctx context.Context, players []model.Player) ([]model.Player, error) {
	mappings, err := s.store.Mappings(ctx, s.cfg.Platform)
	if err != nil {
		return nil, err
	}
	out := make([]model.Player, len(players))
	for i, p := range players {
		if slug, ok := mappings[p.ID]; ok && p.ProjectionSlug == "" {
			p.ProjectionSlug = slug
		}
		out[i] = p
	}
	return out, nil
}
