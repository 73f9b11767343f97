// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/skillswap/internal/domain/types"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetServiceStats() map[string]interface{}
}

// StatsDependencies defines the interface for population statistics.
type StatsDependencies interface {
	GetStats(ctx context.Context) (types.SimulationStats, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	deps          StatsDependencies
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies, statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{deps: deps, statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests with the recomputed
// population statistics.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats, err := h.deps.GetStats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleServiceStats handles GET /service-stats requests.
func (h *StatsHandler) HandleServiceStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	stats := h.statsProvider.GetServiceStats()
	_ = json.NewEncoder(w).Encode(stats)
}
