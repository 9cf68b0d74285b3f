package api

import (
	"errors"
	"net/http"

	"github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/trade"
	"github.com/okian/gridiron/internal/domain/vor"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBadRequest = errors.New("bad request")
)

// classify maps known error kinds to an HTTP status and a stable code string.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrUnknownTeam):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, app.ErrNoProjections):
		return http.StatusConflict, "no_projections"
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, trade.ErrInvalidRequest),
		errors.Is(err, vor.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidPlayer),
		errors.Is(err, model.ErrInvalidRoster),
		errors.Is(err, model.ErrInvalidProjection),
		errors.Is(err, model.ErrUnknownPosition),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
