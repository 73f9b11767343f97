// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/skillswap/internal/adapters/repository"
	service "github.com/okian/skillswap/internal/app"
	"github.com/okian/skillswap/internal/domain/matching"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/population"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/internal/simulation"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	UpsertUser(ctx context.Context, u model.User) (model.User, error)
	GetUser(ctx context.Context, userID string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	RemoveUser(ctx context.Context, userID string) error
	SeedDemo(ctx context.Context) ([]model.User, error)
	GeneratePopulation(ctx context.Context, count int, scenario population.Scenario) ([]model.User, error)
	GetCandidates(ctx context.Context, userID string) ([]model.User, error)
	Swipe(ctx context.Context, actorID, targetID string, action model.Action, mode matching.Mode) (types.SwipeResult, error)
	GetMatches(ctx context.Context, userID string) ([]types.MatchView, error)
	GetStats(ctx context.Context) (types.SimulationStats, error)
	ResetAll(ctx context.Context)
	Simulate(ctx context.Context, cfg simulation.Config) (simulation.Report, error)
	SetMatchProbability(p float64) error
	MatchProbability() float64
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	usersHandler      *UsersHandler
	candidatesHandler *CandidatesHandler
	swipeHandler      *SwipeHandler
	matchesHandler    *MatchesHandler
	populationHandler *PopulationHandler
	simulationHandler *SimulationHandler
	dashboardHandler  *dashboardHandler

	defaultScenario population.Scenario
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithDefaultScenario sets the scenario used when a population request
// omits one. Unknown values are ignored.
func WithDefaultScenario(scenario population.Scenario) ServerOption {
	return func(s *Server) {
		if scenario.Valid() {
			s.defaultScenario = scenario
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{defaultScenario: population.ScenarioBaseline}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps, statsProvider)
	s.usersHandler = NewUsersHandler(deps)
	s.candidatesHandler = NewCandidatesHandler(deps)
	s.swipeHandler = NewSwipeHandler(deps)
	s.matchesHandler = NewMatchesHandler(deps)
	s.populationHandler = NewPopulationHandler(deps, s.defaultScenario)
	s.simulationHandler = NewSimulationHandler(deps)
	s.dashboardHandler = newdashboardHandler()
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/service-stats", MetricsMiddleware(s.statsHandler.HandleServiceStats, "service_stats"))
	mux.HandleFunc("/users", MetricsMiddleware(s.usersHandler.HandleUsers, "users"))
	mux.HandleFunc("/users/", MetricsMiddleware(s.usersHandler.HandleUserByID, "user"))
	mux.HandleFunc("/candidates/", MetricsMiddleware(s.candidatesHandler.HandleGetCandidates, "candidates"))
	mux.HandleFunc("/swipe", MetricsMiddleware(s.swipeHandler.HandlePostSwipe, "swipe"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("/seed", MetricsMiddleware(s.populationHandler.HandleSeed, "seed"))
	mux.HandleFunc("/population", MetricsMiddleware(s.populationHandler.HandleGenerate, "population"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.populationHandler.HandleReset, "reset"))
	mux.HandleFunc("/simulate", MetricsMiddleware(s.simulationHandler.HandleSimulate, "simulate"))
	mux.HandleFunc("/match-probability", MetricsMiddleware(s.simulationHandler.HandleMatchProbability, "match_probability"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates well known domain error kinds to HTTP
// statuses, defaulting to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrSelfSwipe),
		errors.Is(err, repository.ErrInvalidAction),
		errors.Is(err, repository.ErrInvalidUser),
		errors.Is(err, service.ErrInvalidPopulationSize),
		errors.Is(err, service.ErrUnknownScenario),
		errors.Is(err, service.ErrInvalidProbability),
		errors.Is(err, service.ErrInvalidSwipeCount),
		errors.Is(err, simulation.ErrInsufficientUsers):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// pathParam extracts the single path segment after prefix, or "" when
// the path is malformed.
func pathParam(r *http.Request, prefix string) string {
	p := strings.TrimPrefix(r.URL.Path, prefix)
	if p == "" || strings.Contains(p, "/") {
		return ""
	}
	return p
}
