// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkillCategory groups skills for presentation and scenario weighting.
type SkillCategory string

// Skill categories.
const (
	CategoryTechnical SkillCategory = "technical"
	CategoryCreative  SkillCategory = "creative"
	CategoryAcademic  SkillCategory = "academic"
	CategoryLifestyle SkillCategory = "lifestyle"
)

// Skill is immutable reference data. Identity is by Name; IDs are
// regenerated ad hoc by callers and carry no meaning.
type Skill struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}

// User represents a member of the exchange directory.
// Offering holds skills the user can teach, Seeking the skills
// they want to learn.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	School    string    `json:"school"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Offering  []Skill   `json:"offering"`
	Seeking   []Skill   `json:"seeking"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserID returns a fresh unique user id.
func NewUserID() string {
	return "user-" + uuid.NewString()
}

// OffersSkill reports whether the user offers the named skill.
func (u User) OffersSkill(name string) bool {
	for _, s := range u.Offering {
		if s.Name == name {
			return true
		}
	}
	return false
}

// SeeksAnyOf reports whether any of the user's sought skills appears
// in the given offering.
func (u User) SeeksAnyOf(offering []Skill) bool {
	for _, want := range u.Seeking {
		for _, have := range offering {
			if want.Name == have.Name {
				return true
			}
		}
	}
	return false
}

// Action is a user's one-directional decision on a candidate.
type Action string

// Swipe actions. The UI renders these as right/left swipes; the core
// only ever speaks like/pass.
const (
	ActionLike Action = "like"
	ActionPass Action = "pass"
)

// Valid reports whether the action is a known value.
func (a Action) Valid() bool {
	return a == ActionLike || a == ActionPass
}

// SwipeAction is one ledger row. Exactly one row exists per
// (ActorID, TargetID) pair; a re-swipe overwrites it.
type SwipeAction struct {
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Match is a confirmed mutual like between two users. UserAID is always
// the lexicographically smaller id so an unordered pair has a single
// canonical representation.
type Match struct {
	ID        string    `json:"id"`
	UserAID   string    `json:"user_a_id"`
	UserBID   string    `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Involves reports whether userID is one of the match's two sides.
func (m Match) Involves(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// Counterpart returns the other side of the match relative to userID.
func (m Match) Counterpart(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// NormalizePair orders two user ids so the smaller one comes first.
func NormalizePair(a, b string) (string, string) {
	if strings.Compare(a, b) > 0 {
		return b, a
	}
	return a, b
}

// PairKey builds the canonical storage key for an unordered user pair.
func PairKey(a, b string) string {
	a, b = NormalizePair(a, b)
	return a + ":" + b
}
