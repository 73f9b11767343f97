// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/skillswap/internal/domain/types"
)

// MatchDependencies defines the interface for match listing.
type MatchDependencies interface {
	GetMatches(ctx context.Context, userID string) ([]types.MatchView, error)
}

// MatchesHandler handles match listing requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleGetMatches handles GET /matches/{user_id} requests.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := pathParam(r, "/matches/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	matches, err := h.deps.GetMatches(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
