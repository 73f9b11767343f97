// Package population generates synthetic users for seeding and
// simulation. Skill profiles follow a named scenario; identities are
// fabricated from fixed word lists.
package population

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/skills"
)

// Scenario names a skill-distribution policy.
type Scenario string

// Supported scenarios.
const (
	// ScenarioBaseline samples 1-3 offered and 1-3 sought skills
	// uniformly at random.
	ScenarioBaseline Scenario = "baseline"
	// ScenarioScarcity makes 10% of users suppliers of the scarce
	// skill and 90% seekers of it, modeling supply/demand imbalance.
	ScenarioScarcity Scenario = "scarcity"
	// ScenarioCustom is accepted for compatibility and behaves like
	// baseline.
	ScenarioCustom Scenario = "custom"
)

// Valid reports whether the scenario is a known value.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioBaseline, ScenarioScarcity, ScenarioCustom:
		return true
	}
	return false
}

// Scenario distribution constants.
const (
	supplierFraction = 0.10
	minProfileSkills = 1
	maxProfileSkills = 3
)

// Generator produces synthetic users. Not safe for concurrent use; the
// rand source is owned by the generator.
type Generator struct {
	rng      *rand.Rand
	idPrefix string
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source for reproducible populations.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithIDPrefix sets the prefix used for generated user ids.
func WithIDPrefix(prefix string) Option {
	return func(g *Generator) {
		if prefix != "" {
			g.idPrefix = prefix
		}
	}
}

// New creates a generator seeded from the current time.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		idPrefix: "sim",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateUser produces one synthetic user under the given scenario.
func (g *Generator) GenerateUser(scenario Scenario) model.User {
	u := model.User{
		ID:        g.idPrefix + "-" + uuid.New().String(),
		Name:      g.fullName(),
		Role:      pick(g.rng, roles),
		School:    pick(g.rng, schools),
		Bio:       g.bio(),
		CreatedAt: time.Now().UTC(),
	}
	u.Avatar = avatarURL(u.ID)

	switch scenario {
	case ScenarioScarcity:
		if g.rng.Float64() < supplierFraction {
			// Supplier: offers the scarce skill, seeks one at random.
			u.Offering = []model.Skill{skills.New(skills.ScarceSkillName)}
			u.Seeking = []model.Skill{skills.Pick(g.rng)}
		} else {
			u.Offering = []model.Skill{skills.Pick(g.rng)}
			u.Seeking = []model.Skill{skills.New(skills.ScarceSkillName)}
		}
	default:
		u.Offering = skills.Sample(g.rng, g.profileSize())
		u.Seeking = skills.Sample(g.rng, g.profileSize())
	}
	return u
}

// GeneratePopulation produces count users with distinct ids. No
// deduplication against an existing population is attempted; duplicate
// names are acceptable, duplicate ids are not.
func (g *Generator) GeneratePopulation(count int, scenario Scenario) []model.User {
	users := make([]model.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, g.GenerateUser(scenario))
	}
	return users
}

func (g *Generator) profileSize() int {
	return minProfileSkills + g.rng.Intn(maxProfileSkills-minProfileSkills+1)
}

func (g *Generator) fullName() string {
	return pick(g.rng, firstNames) + " " + pick(g.rng, lastNames)
}

func (g *Generator) bio() string {
	return fmt.Sprintf(pick(g.rng, bioTemplates), pick(g.rng, interests))
}

// avatarURL derives a deterministic placeholder avatar from the user id.
func avatarURL(id string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + id
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}

var firstNames = []string{
	"Ava", "Ben", "Chloe", "Daniel", "Elena", "Felix", "Grace", "Hugo",
	"Iris", "Jonas", "Kira", "Liam", "Mara", "Noah", "Olivia", "Pavel",
	"Quinn", "Rosa", "Sam", "Tessa", "Umar", "Vera", "Wes", "Ximena",
	"Yara", "Zane",
}

var lastNames = []string{
	"Abbott", "Berger", "Castro", "Dalton", "Egan", "Fuentes", "Gray",
	"Hale", "Iqbal", "Jensen", "Klein", "Lowe", "Mori", "Novak",
	"Okafor", "Price", "Quon", "Reyes", "Silva", "Tran", "Ueda",
	"Vargas", "Weber", "Xu", "Yilmaz", "Zhou",
}

var roles = []string{
	"Student", "Designer", "Musician", "Tutor", "Chef", "Engineer",
	"Writer", "Photographer", "Researcher", "Barista",
}

var schools = []string{
	"Nebula Arts", "Rock Star Academy", "Culinary Institute",
	"Quantum High", "Riverside College", "Northgate University",
	"Harbor Tech", "Maple Grove Academy",
}

var interests = []string{
	"music", "coding", "cooking", "design", "languages", "photography",
	"fitness", "writing",
}

var bioTemplates = []string{
	"Always up for trading lessons, especially around %s.",
	"Learning something new every week. Big on %s lately.",
	"Happy to teach what I know if you can help me with %s.",
	"Student by day, %s enthusiast by night.",
	"Looking for a swap partner who is into %s.",
}
