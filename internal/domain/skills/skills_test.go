package skills_test

import (
	"math/rand"
	"testing"

	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/skills"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("Given the skill taxonomy", t, func() {
		Convey("Then it should contain the scarce skill", func() {
			s, ok := skills.Lookup(skills.ScarceSkillName)
			So(ok, ShouldBeTrue)
			So(s.Category, ShouldEqual, model.CategoryTechnical)
		})

		Convey("Then All should return every entry", func() {
			all := skills.All()
			So(len(all), ShouldEqual, skills.Count())
			So(skills.Count(), ShouldBeGreaterThanOrEqualTo, 30)
		})

		Convey("And mutating the returned slice should not affect the catalog", func() {
			all := skills.All()
			all[0].Name = "mutated"
			So(skills.All()[0].Name, ShouldNotEqual, "mutated")
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given skill lookups", t, func() {
		Convey("Then known names should resolve", func() {
			s, ok := skills.Lookup("Guitar")
			So(ok, ShouldBeTrue)
			So(s.Name, ShouldEqual, "Guitar")
		})

		Convey("And unknown names should not", func() {
			_, ok := skills.Lookup("Underwater Basket Weaving")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given fresh skill instances", t, func() {
		Convey("Then a catalog skill should keep its category", func() {
			s := skills.New("Cooking")
			So(s.Category, ShouldEqual, model.CategoryLifestyle)
			So(s.ID, ShouldNotBeEmpty)
		})

		Convey("And each instance should get its own id", func() {
			So(skills.New("Cooking").ID, ShouldNotEqual, skills.New("Cooking").ID)
		})

		Convey("And an off-catalog name should still be usable", func() {
			s := skills.New("Juggling")
			So(s.Name, ShouldEqual, "Juggling")
			So(s.Category, ShouldEqual, model.CategoryLifestyle)
		})
	})
}

func TestSample(t *testing.T) {
	Convey("Given a seeded random source", t, func() {
		rng := rand.New(rand.NewSource(1))

		Convey("When sampling a handful of skills", func() {
			sample := skills.Sample(rng, 5)

			Convey("Then the requested count should be distinct", func() {
				So(len(sample), ShouldEqual, 5)
				seen := make(map[string]bool, len(sample))
				for _, s := range sample {
					So(seen[s.Name], ShouldBeFalse)
					seen[s.Name] = true
				}
			})
		})

		Convey("When sampling more than the catalog holds", func() {
			sample := skills.Sample(rng, skills.Count()+10)

			Convey("Then the result should clamp to the catalog size", func() {
				So(len(sample), ShouldEqual, skills.Count())
			})
		})

		Convey("When sampling zero skills", func() {
			So(skills.Sample(rng, 0), ShouldBeNil)
		})

		Convey("When picking a single skill", func() {
			s := skills.Pick(rng)
			_, ok := skills.Lookup(s.Name)
			So(ok, ShouldBeTrue)
		})
	})
}
