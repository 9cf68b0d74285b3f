// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/trade"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// UpdateProjections replaces stored projection records.
	UpdateProjections(ctx context.Context, projections []model.Projection) error

	// RegisterRoster validates and stores one team's roster.
	RegisterRoster(ctx context.Context, roster model.Roster) error

	// Rankings returns per-position VOR rankings with summaries.
	Rankings(ctx context.Context) (*RankingsReport, error)

	// Baselines reports replacement-level points per position.
	Baselines(ctx context.Context) (map[model.Position]float64, error)

	// Trades runs a trade analysis for one team.
	Trades(ctx context.Context, teamID string, maxPerSide int, allowUneven bool) ([]Proposal, error)
}

// Read shapes mirrored from the service layer.
type (
	RankingsReport = app.RankingsReport
	Proposal       = trade.Proposal
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	projectionsHandler *ProjectionsHandler
	rostersHandler     *RostersHandler
	rankingsHandler    *RankingsHandler
	baselinesHandler   *BaselinesHandler
	tradesHandler      *TradesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		projectionsHandler: NewProjectionsHandler(deps),
		rostersHandler:     NewRostersHandler(deps),
		rankingsHandler:    NewRankingsHandler(deps),
		baselinesHandler:   NewBaselinesHandler(deps),
		tradesHandler:      NewTradesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/projections", MetricsMiddleware(s.projectionsHandler.HandlePutProjections, "projections"))
	mux.HandleFunc("/rosters", MetricsMiddleware(s.rostersHandler.HandlePutRoster, "rosters"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/baselines", MetricsMiddleware(s.baselinesHandler.HandleGetBaselines, "baselines"))
	mux.HandleFunc("/trades/", MetricsMiddleware(s.tradesHandler.HandleGetTrades, "trades"))
}

type statusResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer error kinds to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
