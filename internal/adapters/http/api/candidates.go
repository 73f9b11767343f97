// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/skillswap/internal/domain/model"
)

// CandidateDependencies defines the interface for deck operations.
type CandidateDependencies interface {
	GetCandidates(ctx context.Context, userID string) ([]model.User, error)
}

// CandidatesHandler handles swipe deck requests.
type CandidatesHandler struct {
	deps CandidateDependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// HandleGetCandidates handles GET /candidates/{user_id} requests.
func (h *CandidatesHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidates"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := pathParam(r, "/candidates/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	candidates, err := h.deps.GetCandidates(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
