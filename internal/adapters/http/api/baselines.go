package api

import (
	"context"
	"net/http"

	"github.com/okian/gridiron/internal/domain/model"
)

// BaselinesDependencies defines the interface for baseline queries.
type BaselinesDependencies interface {
	Baselines(ctx context.Context) (map[model.Position]float64, error)
}

// BaselinesHandler handles replacement-baseline requests.
type BaselinesHandler struct {
	deps BaselinesDependencies
}

// NewBaselinesHandler creates a new baselines handler.
func NewBaselinesHandler(deps BaselinesDependencies) *BaselinesHandler {
	return &BaselinesHandler{deps: deps}
}

// baselinesResponse keys replacement points by position tag.
type baselinesResponse struct {
	Baselines map[model.Position]float64 `json:"baselines"`
}

// HandleGetBaselines handles GET /baselines requests.
func (h *BaselinesHandler) HandleGetBaselines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	baselines, err := h.deps.Baselines(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, baselinesResponse{Baselines: baselines})
}
