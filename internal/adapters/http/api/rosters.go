package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/gridiron/internal/domain/model"
)

// RostersDependencies defines the interface for roster registration.
type RostersDependencies interface {
	RegisterRoster(ctx context.Context, roster model.Roster) error
}

// RostersHandler handles roster registration requests.
type RostersHandler struct {
	deps RostersDependencies
}

// NewRostersHandler creates a new rosters handler.
func NewRostersHandler(deps RostersDependencies) *RostersHandler {
	return &RostersHandler{deps: deps}
}

// HandlePutRoster handles PUT /rosters requests. Registering the same team
// id again replaces the previous roster.
func (h *RostersHandler) HandlePutRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var roster model.Roster
	if err := json.NewDecoder(r.Body).Decode(&roster); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := h.deps.RegisterRoster(r.Context(), roster); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "registered", Count: len(roster.Players)})
}
