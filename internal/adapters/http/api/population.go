// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/population"
)

// PopulationDependencies defines the interface for population
// management operations.
type PopulationDependencies interface {
	SeedDemo(ctx context.Context) ([]model.User, error)
	GeneratePopulation(ctx context.Context, count int, scenario population.Scenario) ([]model.User, error)
	ResetAll(ctx context.Context)
}

// PopulationHandler handles population management requests.
type PopulationHandler struct {
	deps            PopulationDependencies
	defaultScenario population.Scenario
}

// NewPopulationHandler creates a new population handler. The default
// scenario applies when a generate request omits one.
func NewPopulationHandler(deps PopulationDependencies, defaultScenario population.Scenario) *PopulationHandler {
	return &PopulationHandler{deps: deps, defaultScenario: defaultScenario}
}

// generateRequest mirrors the schema for POST /population. Scenario is
// optional and falls back to the configured default.
type generateRequest struct {
	Count    int    `json:"count"`
	Scenario string `json:"scenario"`
}

// HandleSeed handles POST /seed requests.
func (h *PopulationHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	users, err := h.deps.SeedDemo(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleGenerate handles POST /population requests.
func (h *PopulationHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	const op = "api.generate_population"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	scenario := h.defaultScenario
	if req.Scenario != "" {
		scenario = population.Scenario(req.Scenario)
	}

	users, err := h.deps.GeneratePopulation(r.Context(), req.Count, scenario)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"generated": len(users),
		"scenario":  scenario,
	})
}

// HandleReset handles POST /reset requests.
func (h *PopulationHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.ResetAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
