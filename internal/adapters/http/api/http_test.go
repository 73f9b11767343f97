package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/skillswap/internal/adapters/http/api"
	repository "github.com/okian/skillswap/internal/adapters/repository"
	service "github.com/okian/skillswap/internal/app"
	"github.com/okian/skillswap/internal/domain/matching"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/population"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/internal/simulation"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies implements api.Dependencies for handler tests.
type mockDependencies struct {
	users       map[string]model.User
	candidates  []model.User
	matches     []types.MatchView
	swipeResult types.SwipeResult
	swipeErr    error
	report       simulation.Report
	simulateErr  error
	statsErr     error
	probability  float64
	resetCalled  bool
	lastMode     matching.Mode
	lastScenario population.Scenario
	lastCfg      simulation.Config
}

func newMockDependencies() *mockDependencies {
	return &mockDependencies{
		users:       make(map[string]model.User),
		probability: 0.5,
	}
}

func (m *mockDependencies) UpsertUser(_ context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockDependencies) GetUser(_ context.Context, userID string) (model.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	return u, nil
}

func (m *mockDependencies) ListUsers(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockDependencies) RemoveUser(_ context.Context, userID string) error {
	if _, ok := m.users[userID]; !ok {
		return fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	delete(m.users, userID)
	return nil
}

func (m *mockDependencies) SeedDemo(ctx context.Context) ([]model.User, error) {
	if len(m.users) == 0 {
		_, _ = m.UpsertUser(ctx, model.User{Name: "Seeded"})
	}
	return m.ListUsers(ctx)
}

func (m *mockDependencies) GeneratePopulation(ctx context.Context, count int, scenario population.Scenario) ([]model.User, error) {
	m.lastScenario = scenario
	if !scenario.Valid() {
		return nil, fmt.Errorf("scenario %q: %w", scenario, errUnknownScenario)
	}
	if count < 1 {
		return nil, errInvalidCount
	}
	users := make([]model.User, 0, count)
	for i := 0; i < count; i++ {
		u, _ := m.UpsertUser(ctx, model.User{Name: fmt.Sprintf("Gen %d", i)})
		users = append(users, u)
	}
	return users, nil
}

func (m *mockDependencies) GetCandidates(_ context.Context, userID string) ([]model.User, error) {
	if _, ok := m.users[userID]; !ok {
		return nil, fmt.Errorf("candidates for %s: %w", userID, repository.ErrNotFound)
	}
	return m.candidates, nil
}

func (m *mockDependencies) Swipe(_ context.Context, actorID, targetID string, action model.Action, mode matching.Mode) (types.SwipeResult, error) {
	m.lastMode = mode
	if m.swipeErr != nil {
		return types.SwipeResult{}, m.swipeErr
	}
	return m.swipeResult, nil
}

func (m *mockDependencies) GetMatches(_ context.Context, userID string) ([]types.MatchView, error) {
	if _, ok := m.users[userID]; !ok {
		return nil, fmt.Errorf("matches for %s: %w", userID, repository.ErrNotFound)
	}
	return m.matches, nil
}

func (m *mockDependencies) GetStats(_ context.Context) (types.SimulationStats, error) {
	if m.statsErr != nil {
		return types.SimulationStats{}, m.statsErr
	}
	return types.SimulationStats{TotalUsers: len(m.users)}, nil
}

func (m *mockDependencies) ResetAll(_ context.Context) {
	m.users = make(map[string]model.User)
	m.resetCalled = true
}

func (m *mockDependencies) Simulate(_ context.Context, cfg simulation.Config) (simulation.Report, error) {
	m.lastCfg = cfg
	if m.simulateErr != nil {
		return simulation.Report{}, m.simulateErr
	}
	if cfg.MatchProbabilitySet && (cfg.MatchProbability < 0 || cfg.MatchProbability > 1) {
		return simulation.Report{}, fmt.Errorf("match probability %f: %w", cfg.MatchProbability, service.ErrInvalidProbability)
	}
	r := m.report
	r.SwipesRequested = cfg.Swipes
	return r, nil
}

func (m *mockDependencies) SetMatchProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("match probability %f: %w", p, service.ErrInvalidProbability)
	}
	m.probability = p
	return nil
}

func (m *mockDependencies) MatchProbability() float64 {
	return m.probability
}

var (
	errUnknownScenario = fmt.Errorf("scenario: %w", service.ErrUnknownScenario)
	errInvalidCount    = fmt.Errorf("count: %w", service.ErrInvalidPopulationSize)
)

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetServiceStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := newMockDependencies()
		mux := newTestMux(deps)

		Convey("Then health endpoint should be accessible", func() {
			w := doJSON(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And stats endpoint should return population stats", func() {
			w := doJSON(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var stats types.SimulationStats
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats.TotalUsers, ShouldEqual, 0)
		})

		Convey("And service-stats endpoint should return the monitoring map", func() {
			w := doJSON(mux, "GET", "/service-stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "started")
		})

		Convey("And a failing stats recompute should return 500", func() {
			deps.statsErr = fmt.Errorf("stats: ledger scan: storage unavailable")
			w := doJSON(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestUsersEndpoints(t *testing.T) {
	Convey("Given an API server with user endpoints", t, func() {
		deps := newMockDependencies()
		mux := newTestMux(deps)

		Convey("When creating a user", func() {
			w := doJSON(mux, "POST", "/users", `{"name":"Sarah Stellar","role":"Designer"}`)

			Convey("Then it should return 201 with the stored profile", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var u model.User
				So(json.Unmarshal(w.Body.Bytes(), &u), ShouldBeNil)
				So(u.ID, ShouldNotBeEmpty)
				So(u.Name, ShouldEqual, "Sarah Stellar")
			})
		})

		Convey("When creating a user without a name", func() {
			w := doJSON(mux, "POST", "/users", `{"role":"Designer"}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting malformed JSON", func() {
			w := doJSON(mux, "POST", "/users", `{"name":`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When fetching an existing user", func() {
			u, _ := deps.UpsertUser(context.Background(), model.User{Name: "Mike Meteor"})
			w := doJSON(mux, "GET", "/users/"+u.ID, "")

			Convey("Then it should return 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "Mike Meteor")
			})
		})

		Convey("When fetching a missing user", func() {
			w := doJSON(mux, "GET", "/users/nope", "")

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When deleting a user", func() {
			u, _ := deps.UpsertUser(context.Background(), model.User{Name: "Luna"})
			w := doJSON(mux, "DELETE", "/users/"+u.ID, "")

			Convey("Then it should return 200 and remove the profile", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				_, err := deps.GetUser(context.Background(), u.ID)
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When listing users", func() {
			_, _ = deps.UpsertUser(context.Background(), model.User{Name: "A"})
			_, _ = deps.UpsertUser(context.Background(), model.User{Name: "B"})
			w := doJSON(mux, "GET", "/users", "")

			Convey("Then it should return 200 with both profiles", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var users []model.User
				So(json.Unmarshal(w.Body.Bytes(), &users), ShouldBeNil)
				So(len(users), ShouldEqual, 2)
			})
		})
	})
}

func TestCandidatesEndpoint(t *testing.T) {
	Convey("Given an API server with a populated deck", t, func() {
		deps := newMockDependencies()
		u, _ := deps.UpsertUser(context.Background(), model.User{Name: "Swiper"})
		deps.candidates = []model.User{{ID: "c1", Name: "Candidate"}}
		mux := newTestMux(deps)

		Convey("When requesting candidates for an existing user", func() {
			w := doJSON(mux, "GET", "/candidates/"+u.ID, "")

			Convey("Then it should return the deck", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got []model.User
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, "c1")
			})
		})

		Convey("When requesting candidates for a missing user", func() {
			w := doJSON(mux, "GET", "/candidates/ghost", "")

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the path has no user id", func() {
			w := doJSON(mux, "GET", "/candidates/", "")

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestSwipeEndpoint(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := newMockDependencies()
		mux := newTestMux(deps)

		Convey("When posting a valid like", func() {
			deps.swipeResult = types.SwipeResult{Matched: true, MatchID: "match-1"}
			w := doJSON(mux, "POST", "/swipe", `{"actor_id":"a","target_id":"b","action":"like"}`)

			Convey("Then it should return the swipe result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var result types.SwipeResult
				So(json.Unmarshal(w.Body.Bytes(), &result), ShouldBeNil)
				So(result.Matched, ShouldBeTrue)
				So(result.MatchID, ShouldEqual, "match-1")
			})

			Convey("And the mode should default to deterministic", func() {
				So(deps.lastMode, ShouldEqual, matching.ModeDeterministic)
			})
		})

		Convey("When posting with simulated mode", func() {
			w := doJSON(mux, "POST", "/swipe", `{"actor_id":"a","target_id":"b","action":"like","mode":"simulated"}`)

			Convey("Then the simulated mode should reach the reconciler", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastMode, ShouldEqual, matching.ModeSimulated)
			})
		})

		Convey("When posting an unknown action", func() {
			w := doJSON(mux, "POST", "/swipe", `{"actor_id":"a","target_id":"b","action":"superlike"}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting an unknown mode", func() {
			w := doJSON(mux, "POST", "/swipe", `{"actor_id":"a","target_id":"b","action":"like","mode":"psychic"}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the reconciler reports a self swipe", func() {
			deps.swipeErr = fmt.Errorf("swipe: %w", repository.ErrSelfSwipe)
			w := doJSON(mux, "POST", "/swipe", `{"actor_id":"a","target_id":"a","action":"like"}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the actor does not exist", func() {
			deps.swipeErr = fmt.Errorf("swipe actor a: %w", repository.ErrNotFound)
			w := doJSON(mux, "POST", "/swipe", `{"actor_id":"a","target_id":"b","action":"like"}`)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestMatchesEndpoint(t *testing.T) {
	Convey("Given an API server with recorded matches", t, func() {
		deps := newMockDependencies()
		u, _ := deps.UpsertUser(context.Background(), model.User{Name: "Matched"})
		deps.matches = []types.MatchView{
			{ID: "match-1", CreatedAt: time.Now(), Counterpart: model.User{ID: "c1", Name: "Other"}},
		}
		mux := newTestMux(deps)

		Convey("When listing matches for an existing user", func() {
			w := doJSON(mux, "GET", "/matches/"+u.ID, "")

			Convey("Then the counterpart should be resolved", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got []types.MatchView
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].Counterpart.Name, ShouldEqual, "Other")
			})
		})

		Convey("When listing matches for a missing user", func() {
			w := doJSON(mux, "GET", "/matches/ghost", "")

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestPopulationEndpoints(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := newMockDependencies()
		mux := newTestMux(deps)

		Convey("When seeding demo profiles", func() {
			w := doJSON(mux, "POST", "/seed", "")

			Convey("Then it should return the directory contents", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var users []model.User
				So(json.Unmarshal(w.Body.Bytes(), &users), ShouldBeNil)
				So(len(users), ShouldEqual, 1)
			})
		})

		Convey("When generating a population", func() {
			w := doJSON(mux, "POST", "/population", `{"count":5,"scenario":"baseline"}`)

			Convey("Then it should return 201 with the generated count", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(w.Body.String(), ShouldContainSubstring, `"generated":5`)
			})
		})

		Convey("When generating without a scenario", func() {
			w := doJSON(mux, "POST", "/population", `{"count":3}`)

			Convey("Then the baseline default should be used", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(deps.lastScenario, ShouldEqual, population.ScenarioBaseline)
			})
		})

		Convey("When generating with an unknown scenario", func() {
			w := doJSON(mux, "POST", "/population", `{"count":5,"scenario":"apocalypse"}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the server carries a configured default scenario", func() {
			scarce := api.NewServer(deps, &mockStatsProvider{}, api.WithDefaultScenario(population.ScenarioScarcity))
			scarceMux := http.NewServeMux()
			scarce.Register(context.Background(), scarceMux)

			w := doJSON(scarceMux, "POST", "/population", `{"count":3}`)

			Convey("Then omitting the scenario should fall back to it", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(deps.lastScenario, ShouldEqual, population.ScenarioScarcity)
			})

			Convey("But an explicit scenario should still win", func() {
				w2 := doJSON(scarceMux, "POST", "/population", `{"count":3,"scenario":"baseline"}`)
				So(w2.Code, ShouldEqual, http.StatusCreated)
				So(deps.lastScenario, ShouldEqual, population.ScenarioBaseline)
			})
		})

		Convey("When resetting", func() {
			_, _ = deps.UpsertUser(context.Background(), model.User{Name: "Doomed"})
			w := doJSON(mux, "POST", "/reset", "")

			Convey("Then state should be cleared", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.resetCalled, ShouldBeTrue)
				So(len(deps.users), ShouldEqual, 0)
			})
		})
	})
}

func TestSimulationEndpoints(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := newMockDependencies()
		mux := newTestMux(deps)

		Convey("When running a simulation", func() {
			deps.report = simulation.Report{MatchesMade: 7}
			w := doJSON(mux, "POST", "/simulate", `{"swipes":100}`)

			Convey("Then it should return the report", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var report simulation.Report
				So(json.Unmarshal(w.Body.Bytes(), &report), ShouldBeNil)
				So(report.SwipesRequested, ShouldEqual, 100)
				So(report.MatchesMade, ShouldEqual, 7)
			})
		})

		Convey("When running with a per-run match probability", func() {
			w := doJSON(mux, "POST", "/simulate", `{"swipes":100,"match_probability":0.25}`)

			Convey("Then the override should reach the service", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastCfg.MatchProbabilitySet, ShouldBeTrue)
				So(deps.lastCfg.MatchProbability, ShouldEqual, 0.25)
			})
		})

		Convey("When omitting the match probability", func() {
			w := doJSON(mux, "POST", "/simulate", `{"swipes":100}`)

			Convey("Then no override should be requested", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastCfg.MatchProbabilitySet, ShouldBeFalse)
			})
		})

		Convey("When the per-run match probability is out of range", func() {
			w := doJSON(mux, "POST", "/simulate", `{"swipes":100,"match_probability":1.5}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the simulation has too few users", func() {
			deps.simulateErr = fmt.Errorf("simulation: 1 users: %w", simulation.ErrInsufficientUsers)
			w := doJSON(mux, "POST", "/simulate", `{"swipes":100}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When reading the match probability", func() {
			w := doJSON(mux, "GET", "/match-probability", "")

			Convey("Then it should return the current value", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "0.5")
			})
		})

		Convey("When updating the match probability", func() {
			w := doJSON(mux, "PUT", "/match-probability", `{"probability":0.9}`)

			Convey("Then the new value should be stored", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.probability, ShouldEqual, 0.9)
			})
		})

		Convey("When updating with an out of range probability", func() {
			w := doJSON(mux, "PUT", "/match-probability", `{"probability":1.5}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}
