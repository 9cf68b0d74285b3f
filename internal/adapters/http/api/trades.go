package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// TradesDependencies defines the interface for trade analyses.
type TradesDependencies interface {
	Trades(ctx context.Context, teamID string, maxPerSide int, allowUneven bool) ([]Proposal, error)
}

// TradesHandler handles trade analysis requests.
type TradesHandler struct {
	deps TradesDependencies
}

// NewTradesHandler creates a new trades handler.
func NewTradesHandler(deps TradesDependencies) *TradesHandler {
	return &TradesHandler{deps: deps}
}

// tradesResponse wraps the proposal list so an empty analysis still returns
// a JSON object rather than null.
type tradesResponse struct {
	TeamID    string     `json:"team_id"`
	Proposals []Proposal `json:"proposals"`
}

// HandleGetTrades handles GET /trades/{team_id} requests.
// Query parameters: max_per_side (default 2), uneven (default true).
func (h *TradesHandler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teamID := strings.TrimPrefix(r.URL.Path, "/trades/")
	if teamID == "" || strings.Contains(teamID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing team id", ErrBadRequest))
		return
	}

	maxPerSide := 2
	if raw := r.URL.Query().Get("max_per_side"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: max_per_side: %w", ErrBadRequest, err))
			return
		}
		maxPerSide = n
	}
	allowUneven := true
	if raw := r.URL.Query().Get("uneven"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: uneven: %w", ErrBadRequest, err))
			return
		}
		allowUneven = b
	}

	proposals, err := h.deps.Trades(r.Context(), teamID, maxPerSide, allowUneven)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if proposals == nil {
		proposals = []Proposal{}
	}
	writeJSON(w, http.StatusOK, tradesResponse{TeamID: teamID, Proposals: proposals})
}
