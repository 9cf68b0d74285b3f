package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/gridiron/internal/domain/model"
)

// ProjectionsDependencies defines the interface for projection updates.
type ProjectionsDependencies interface {
	UpdateProjections(ctx context.Context, projections []model.Projection) error
}

// ProjectionsHandler handles projection ingest requests.
type ProjectionsHandler struct {
	deps ProjectionsDependencies
}

// NewProjectionsHandler creates a new projections handler.
func NewProjectionsHandler(deps ProjectionsDependencies) *ProjectionsHandler {
	return &ProjectionsHandler{deps: deps}
}

// projectionsRequest mirrors the ingest schema for PUT /projections.
type projectionsRequest struct {
	Projections []model.Projection `json:"projections"`
}

// HandlePutProjections handles PUT /projections requests. The batch replaces
// stored records by slug; a malformed record rejects the whole batch.
func (h *ProjectionsHandler) HandlePutProjections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req projectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if len(req.Projections) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: empty projections", ErrBadRequest))
		return
	}
	if err := h.deps.UpdateProjections(r.Context(), req.Projections); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "updated", Count: len(req.Projections)})
}
