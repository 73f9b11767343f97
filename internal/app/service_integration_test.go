package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/okian/skillswap/internal/app"
	"github.com/okian/skillswap/internal/domain/matching"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/population"
	"github.com/okian/skillswap/internal/simulation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service with the demo population", t, func() {
		svc := startedService(service.WithSimWorkerCount(2), service.WithSimQueueSize(1000))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		users, err := svc.SeedDemo(ctx)
		So(err, ShouldBeNil)
		So(len(users), ShouldEqual, 4)

		sarah, mike := users[0], users[1]

		Convey("When fetching candidates for a user", func() {
			candidates, err := svc.GetCandidates(ctx, sarah.ID)

			Convey("Then everyone else should be in the deck", func() {
				So(err, ShouldBeNil)
				So(len(candidates), ShouldEqual, 3)
				for _, c := range candidates {
					So(c.ID, ShouldNotEqual, sarah.ID)
				}
			})
		})

		Convey("When two users like each other deterministically", func() {
			first, err := svc.Swipe(ctx, sarah.ID, mike.ID, model.ActionLike, matching.ModeDeterministic)
			So(err, ShouldBeNil)
			So(first.Matched, ShouldBeFalse)

			second, err := svc.Swipe(ctx, mike.ID, sarah.ID, model.ActionLike, matching.ModeDeterministic)
			So(err, ShouldBeNil)

			Convey("Then the second like should create the match", func() {
				So(second.Matched, ShouldBeTrue)
				So(second.MatchID, ShouldNotBeEmpty)
			})

			Convey("And both sides should see the match with the counterpart resolved", func() {
				sarahMatches, err := svc.GetMatches(ctx, sarah.ID)
				So(err, ShouldBeNil)
				So(len(sarahMatches), ShouldEqual, 1)
				So(sarahMatches[0].Counterpart.ID, ShouldEqual, mike.ID)

				mikeMatches, err := svc.GetMatches(ctx, mike.ID)
				So(err, ShouldBeNil)
				So(len(mikeMatches), ShouldEqual, 1)
				So(mikeMatches[0].Counterpart.ID, ShouldEqual, sarah.ID)
			})

			Convey("And re-liking should not create a second match", func() {
				again, err := svc.Swipe(ctx, sarah.ID, mike.ID, model.ActionLike, matching.ModeDeterministic)
				So(err, ShouldBeNil)
				So(again.Matched, ShouldBeTrue)
				So(again.MatchID, ShouldEqual, second.MatchID)

				stats, err := svc.GetStats(ctx)
				So(err, ShouldBeNil)
				So(stats.TotalMatches, ShouldEqual, 1)
			})

			Convey("And matched users should drop out of each other's deck", func() {
				candidates, err := svc.GetCandidates(ctx, sarah.ID)
				So(err, ShouldBeNil)
				for _, c := range candidates {
					So(c.ID, ShouldNotEqual, mike.ID)
				}
			})
		})

		Convey("When a like is answered with a pass", func() {
			_, err := svc.Swipe(ctx, sarah.ID, mike.ID, model.ActionLike, matching.ModeDeterministic)
			So(err, ShouldBeNil)
			result, err := svc.Swipe(ctx, mike.ID, sarah.ID, model.ActionPass, matching.ModeDeterministic)
			So(err, ShouldBeNil)

			Convey("Then no match should be created", func() {
				So(result.Matched, ShouldBeFalse)

				stats, err := svc.GetStats(ctx)
				So(err, ShouldBeNil)
				So(stats.TotalMatches, ShouldEqual, 0)
			})

			Convey("And changing the pass back to a like should match", func() {
				changed, err := svc.Swipe(ctx, mike.ID, sarah.ID, model.ActionLike, matching.ModeDeterministic)
				So(err, ShouldBeNil)
				So(changed.Matched, ShouldBeTrue)
			})
		})

		Convey("When computing statistics after activity", func() {
			_, err := svc.Swipe(ctx, sarah.ID, mike.ID, model.ActionLike, matching.ModeDeterministic)
			So(err, ShouldBeNil)
			_, err = svc.Swipe(ctx, mike.ID, sarah.ID, model.ActionLike, matching.ModeDeterministic)
			So(err, ShouldBeNil)
			_, err = svc.Swipe(ctx, sarah.ID, users[2].ID, model.ActionPass, matching.ModeDeterministic)
			So(err, ShouldBeNil)

			stats, err := svc.GetStats(ctx)
			So(err, ShouldBeNil)

			Convey("Then the counters should reflect the activity", func() {
				So(stats.TotalUsers, ShouldEqual, 4)
				So(stats.TotalSwipes, ShouldEqual, 3)
				So(stats.RightSwipes, ShouldEqual, 2)
				So(stats.TotalMatches, ShouldEqual, 1)
			})

			Convey("And the derived rates should follow", func() {
				So(stats.MatchRate, ShouldEqual, 50.0)
				So(stats.UserUtilization, ShouldEqual, 50.0)
			})
		})

		Convey("When resetting all state", func() {
			_, err := svc.Swipe(ctx, sarah.ID, mike.ID, model.ActionLike, matching.ModeDeterministic)
			So(err, ShouldBeNil)

			svc.ResetAll(ctx)

			Convey("Then the directory and stats should be empty", func() {
				all, err := svc.ListUsers(ctx)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 0)

				stats, err := svc.GetStats(ctx)
				So(err, ShouldBeNil)
				So(stats.TotalUsers, ShouldEqual, 0)
				So(stats.TotalSwipes, ShouldEqual, 0)
				So(stats.TotalMatches, ShouldEqual, 0)
			})
		})
	})
}

func TestServiceSimulation(t *testing.T) {
	Convey("Given a started service with a generated population", t, func() {
		svc := startedService(
			service.WithSimWorkerCount(4),
			service.WithSimQueueSize(5000),
			service.WithRandSeed(42),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		_, err := svc.GeneratePopulation(ctx, 50, population.ScenarioBaseline)
		So(err, ShouldBeNil)

		Convey("When running a simulation batch", func() {
			report, err := svc.Simulate(ctx, simulation.Config{Swipes: 500})

			Convey("Then every swipe should be driven through the pipeline", func() {
				So(err, ShouldBeNil)
				So(report.SwipesRequested, ShouldEqual, 500)
				So(report.SwipesEnqueued, ShouldEqual, 500)
				So(report.SwipesProcessed, ShouldEqual, 500)
				So(report.Likes+report.Passes, ShouldEqual, 500)
				So(report.Failed, ShouldEqual, 0)
			})

			Convey("And the reported stats should match a fresh recompute", func() {
				So(err, ShouldBeNil)
				stats, statsErr := svc.GetStats(ctx)
				So(statsErr, ShouldBeNil)
				So(stats.TotalMatches, ShouldEqual, report.Stats.TotalMatches)
				So(report.Stats.TotalUsers, ShouldEqual, 50)
			})
		})

		Convey("When requesting more swipes than the configured limit", func() {
			limited := startedService(service.WithMaxSimulationSwipes(100))
			defer limited.Stop()

			_, err := limited.GeneratePopulation(ctx, 10, population.ScenarioBaseline)
			So(err, ShouldBeNil)

			_, err = limited.Simulate(ctx, simulation.Config{Swipes: 101})

			Convey("Then the run should be rejected", func() {
				So(err, ShouldWrap, service.ErrInvalidSwipeCount)
			})
		})

		Convey("When simulating with fewer than two users", func() {
			empty := startedService()
			defer empty.Stop()

			_, err := empty.Simulate(ctx, simulation.Config{Swipes: 10})

			Convey("Then the run should be rejected", func() {
				So(err, ShouldWrap, simulation.ErrInsufficientUsers)
			})
		})

		Convey("When running with a per-run match probability of zero", func() {
			before := svc.MatchProbability()
			report, err := svc.Simulate(ctx, simulation.Config{
				Swipes:              300,
				MatchProbability:    0,
				MatchProbabilitySet: true,
			})

			Convey("Then the closed gate should suppress every match", func() {
				So(err, ShouldBeNil)
				So(report.SwipesProcessed, ShouldEqual, 300)
				So(report.MatchesMade, ShouldEqual, 0)
			})

			Convey("And the configured gate should be restored afterwards", func() {
				So(err, ShouldBeNil)
				So(svc.MatchProbability(), ShouldEqual, before)
			})
		})

		Convey("When the per-run match probability is out of range", func() {
			_, err := svc.Simulate(ctx, simulation.Config{
				Swipes:              10,
				MatchProbability:    1.5,
				MatchProbabilitySet: true,
			})

			Convey("Then the run should be rejected", func() {
				So(err, ShouldWrap, service.ErrInvalidProbability)
			})
		})
	})
}
