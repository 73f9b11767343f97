// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/skillswap/internal/domain/matching"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/types"
)

// SwipeDependencies defines the interface for swipe reconciliation.
type SwipeDependencies interface {
	Swipe(ctx context.Context, actorID, targetID string, action model.Action, mode matching.Mode) (types.SwipeResult, error)
}

// SwipeHandler handles swipe requests.
type SwipeHandler struct {
	deps SwipeDependencies
}

// NewSwipeHandler creates a new swipe handler.
func NewSwipeHandler(deps SwipeDependencies) *SwipeHandler {
	return &SwipeHandler{deps: deps}
}

// swipeRequest mirrors the schema for POST /swipe. Mode is optional
// and defaults to deterministic.
type swipeRequest struct {
	ActorID  string `json:"actor_id"`
	TargetID string `json:"target_id"`
	Action   string `json:"action"`
	Mode     string `json:"mode"`
}

func (s swipeRequest) validate() error {
	switch {
	case strings.TrimSpace(s.ActorID) == "":
		return errors.New("missing actor_id")
	case strings.TrimSpace(s.TargetID) == "":
		return errors.New("missing target_id")
	case !model.Action(s.Action).Valid():
		return errors.New("action must be like or pass")
	}
	return nil
}

// HandlePostSwipe handles POST /swipe requests.
func (h *SwipeHandler) HandlePostSwipe(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_swipe"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	mode := matching.ModeDeterministic
	if req.Mode != "" {
		mode = matching.Mode(req.Mode)
		if !mode.Valid() {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}

	result, err := h.deps.Swipe(r.Context(), req.ActorID, req.TargetID, model.Action(req.Action), mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
