package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/domain/model"
)

// RankingsDependencies defines the interface for ranking queries.
type RankingsDependencies interface {
	Rankings(ctx context.Context) (*RankingsReport, error)
}

// RankingsHandler handles ranking requests.
type RankingsHandler struct {
	deps RankingsDependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// HandleGetRankings handles GET /rankings requests.
// Query parameters: position (optional filter), limit (optional per-position
// cap).
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var only model.Position
	if raw := r.URL.Query().Get("position"); raw != "" {
		pos, err := model.ParsePosition(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		only = pos
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit %q", ErrBadRequest, raw))
			return
		}
		limit = n
	}

	report, err := h.deps.Rankings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filterReport(report, only, limit))
}

// filterReport narrows a full report to one position and/or the top N per
// position. The summary always describes the full pool.
func filterReport(report *RankingsReport, only model.Position, limit int) *RankingsReport {
	if only == "" && limit == 0 {
		return report
	}
	out := &RankingsReport{
		Positions: make(map[model.Position][]app.RankedPlayer, len(report.Positions)),
		Summary:   report.Summary,
	}
	for pos, ranked := range report.Positions {
		if only != "" && pos != only {
			continue
		}
		if limit > 0 && len(ranked) > limit {
			ranked = ranked[:limit]
		}
		out.Positions[pos] = ranked
	}
	return out
}
