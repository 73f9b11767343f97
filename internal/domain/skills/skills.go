// Package skills holds the static skill taxonomy and sampling helpers
// used by the population generator.
package skills

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/okian/skillswap/internal/domain/model"
)

// ScarceSkillName is the designated high-demand skill used by the
// scarcity scenario.
const ScarceSkillName = "Web Development"

// catalog is the fixed taxonomy. Never mutated after init.
var catalog = []model.Skill{
	{Name: "Programming", Category: model.CategoryTechnical},
	{Name: "Web Development", Category: model.CategoryTechnical},
	{Name: "Mobile Development", Category: model.CategoryTechnical},
	{Name: "Data Science", Category: model.CategoryTechnical},
	{Name: "Machine Learning", Category: model.CategoryTechnical},
	{Name: "UI/UX Design", Category: model.CategoryCreative},
	{Name: "Graphic Design", Category: model.CategoryCreative},
	{Name: "Photography", Category: model.CategoryCreative},
	{Name: "Video Editing", Category: model.CategoryCreative},
	{Name: "Music Production", Category: model.CategoryCreative},
	{Name: "Guitar", Category: model.CategoryCreative},
	{Name: "Piano", Category: model.CategoryCreative},
	{Name: "Singing", Category: model.CategoryCreative},
	{Name: "Drawing", Category: model.CategoryCreative},
	{Name: "Painting", Category: model.CategoryCreative},
	{Name: "Writing", Category: model.CategoryCreative},
	{Name: "Public Speaking", Category: model.CategoryLifestyle},
	{Name: "Marketing", Category: model.CategoryLifestyle},
	{Name: "Business", Category: model.CategoryLifestyle},
	{Name: "Finance", Category: model.CategoryLifestyle},
	{Name: "Cooking", Category: model.CategoryLifestyle},
	{Name: "Fitness", Category: model.CategoryLifestyle},
	{Name: "Yoga", Category: model.CategoryLifestyle},
	{Name: "Languages", Category: model.CategoryAcademic},
	{Name: "Mathematics", Category: model.CategoryAcademic},
	{Name: "Physics", Category: model.CategoryAcademic},
	{Name: "Chemistry", Category: model.CategoryAcademic},
	{Name: "Biology", Category: model.CategoryAcademic},
	{Name: "History", Category: model.CategoryAcademic},
	{Name: "Philosophy", Category: model.CategoryAcademic},
}

// byName indexes the catalog for lookup. Built once at package init.
var byName = func() map[string]model.Skill {
	m := make(map[string]model.Skill, len(catalog))
	for _, s := range catalog {
		m[s.Name] = s
	}
	return m
}()

// Count returns the number of skills in the taxonomy.
func Count() int {
	return len(catalog)
}

// All returns a copy of the full catalog.
func All() []model.Skill {
	out := make([]model.Skill, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the skill with the given name.
func Lookup(name string) (model.Skill, bool) {
	s, ok := byName[name]
	return s, ok
}

// New returns a fresh instance of the named skill with a generated id.
// Unknown names get the lifestyle category; identity is by name, so an
// off-catalog skill is still usable (signup allows free-form skills).
func New(name string) model.Skill {
	s, ok := byName[name]
	if !ok {
		s = model.Skill{Name: name, Category: model.CategoryLifestyle}
	}
	s.ID = "skill-" + uuid.New().String()
	return s
}

// Sample returns n distinct skills drawn uniformly from the catalog,
// each with a fresh id. n is clamped to the catalog size.
func Sample(rng *rand.Rand, n int) []model.Skill {
	if n <= 0 {
		return nil
	}
	if n > len(catalog) {
		n = len(catalog)
	}
	idx := rng.Perm(len(catalog))[:n]
	out := make([]model.Skill, 0, n)
	for _, i := range idx {
		out = append(out, New(catalog[i].Name))
	}
	return out
}

// Pick returns one random skill from the catalog with a fresh id.
func Pick(rng *rand.Rand) model.Skill {
	return New(catalog[rng.Intn(len(catalog))].Name)
}
