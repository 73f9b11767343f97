// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/skillswap/internal/simulation"
)

// SimulationDependencies defines the interface for simulation runs.
type SimulationDependencies interface {
	Simulate(ctx context.Context, cfg simulation.Config) (simulation.Report, error)
	SetMatchProbability(p float64) error
	MatchProbability() float64
}

// SimulationHandler handles simulation requests.
type SimulationHandler struct {
	deps SimulationDependencies
}

// NewSimulationHandler creates a new simulation handler.
func NewSimulationHandler(deps SimulationDependencies) *SimulationHandler {
	return &SimulationHandler{deps: deps}
}

// simulateRequest mirrors the schema for POST /simulate. Zero values
// fall back to server configuration.
type simulateRequest struct {
	Swipes           int      `json:"swipes"`
	Workers          int      `json:"workers"`
	Seed             *int64   `json:"seed"`
	MatchProbability *float64 `json:"match_probability"`
}

// probabilityRequest mirrors the schema for PUT /match-probability.
type probabilityRequest struct {
	Probability float64 `json:"probability"`
}

// HandleSimulate handles POST /simulate requests.
func (h *SimulationHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "api.simulate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	cfg := simulation.Config{
		Swipes:  req.Swipes,
		Workers: req.Workers,
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
		cfg.SeedSet = true
	}
	if req.MatchProbability != nil {
		cfg.MatchProbability = *req.MatchProbability
		cfg.MatchProbabilitySet = true
	}

	report, err := h.deps.Simulate(r.Context(), cfg)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleMatchProbability handles GET and PUT /match-probability requests.
func (h *SimulationHandler) HandleMatchProbability(w http.ResponseWriter, r *http.Request) {
	const op = "api.match_probability"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, probabilityRequest{Probability: h.deps.MatchProbability()})
	case http.MethodPut:
		var req probabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.SetMatchProbability(req.Probability); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, probabilityRequest{Probability: h.deps.MatchProbability()})
	default:
		http.NotFound(w, r)
	}
}
