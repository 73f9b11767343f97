package population_test

import (
	"strings"
	"testing"

	"github.com/okian/skillswap/internal/domain/population"
	"github.com/okian/skillswap/internal/domain/skills"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScenarioValid(t *testing.T) {
	Convey("Given scenario names", t, func() {
		Convey("Then the known scenarios should be valid", func() {
			So(population.ScenarioBaseline.Valid(), ShouldBeTrue)
			So(population.ScenarioScarcity.Valid(), ShouldBeTrue)
			So(population.ScenarioCustom.Valid(), ShouldBeTrue)
		})

		Convey("And anything else should be invalid", func() {
			So(population.Scenario("").Valid(), ShouldBeFalse)
			So(population.Scenario("chaos").Valid(), ShouldBeFalse)
		})
	})
}

func TestGenerateUser(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		gen := population.New(population.WithSeed(1))

		Convey("When generating a baseline user", func() {
			u := gen.GenerateUser(population.ScenarioBaseline)

			Convey("Then the identity fields should be populated", func() {
				So(u.ID, ShouldNotBeEmpty)
				So(strings.HasPrefix(u.ID, "sim-"), ShouldBeTrue)
				So(u.Name, ShouldNotBeEmpty)
				So(u.Role, ShouldNotBeEmpty)
				So(u.School, ShouldNotBeEmpty)
				So(u.Bio, ShouldNotBeEmpty)
				So(u.Avatar, ShouldNotBeEmpty)
				So(u.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And the skill profile should stay within bounds", func() {
				So(len(u.Offering), ShouldBeBetweenOrEqual, 1, 3)
				So(len(u.Seeking), ShouldBeBetweenOrEqual, 1, 3)
			})
		})

		Convey("When generating a scarcity user", func() {
			u := gen.GenerateUser(population.ScenarioScarcity)

			Convey("Then the user either offers or seeks the scarce skill", func() {
				offers := u.OffersSkill(skills.ScarceSkillName)
				seeks := len(u.Seeking) == 1 && u.Seeking[0].Name == skills.ScarceSkillName
				So(offers || seeks, ShouldBeTrue)
			})
		})
	})
}

func TestGeneratePopulation(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		gen := population.New(population.WithSeed(42))

		Convey("When generating a baseline population", func() {
			users := gen.GeneratePopulation(200, population.ScenarioBaseline)

			Convey("Then the requested count should be produced with distinct ids", func() {
				So(len(users), ShouldEqual, 200)
				ids := make(map[string]bool, len(users))
				for _, u := range users {
					So(ids[u.ID], ShouldBeFalse)
					ids[u.ID] = true
				}
			})
		})

		Convey("When generating a scarcity population", func() {
			users := gen.GeneratePopulation(1000, population.ScenarioScarcity)
			So(len(users), ShouldEqual, 1000)

			suppliers := 0
			for _, u := range users {
				So(len(u.Offering), ShouldEqual, 1)
				So(len(u.Seeking), ShouldEqual, 1)
				if u.OffersSkill(skills.ScarceSkillName) {
					suppliers++
				} else {
					So(u.Seeking[0].Name, ShouldEqual, skills.ScarceSkillName)
				}
			}

			Convey("Then roughly a tenth should be suppliers", func() {
				So(suppliers, ShouldBeBetween, 50, 150)
			})
		})

		Convey("When using a custom id prefix", func() {
			prefixed := population.New(population.WithSeed(1), population.WithIDPrefix("gen"))
			u := prefixed.GenerateUser(population.ScenarioBaseline)
			So(strings.HasPrefix(u.ID, "gen-"), ShouldBeTrue)
		})
	})
}
