// Package rubric provides the static catalog of assessable competencies.
// Each competency carries five ordered proficiency levels with observable
// indicators, plus canonical red/green flag patterns. The catalog is built
// once at process start and is read-only afterwards, so it can safely be
// shared across sessions.
package rubric

import (
	"github.com/jonathan/interview-agent/internal/types"
)

// Level describes what one proficiency level looks like for a competency
type Level struct {
	Level       int      `json:"level"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Indicators  []string `json:"indicators,omitempty"`
}

// Competency is one interview-type-agnostic competency definition
type Competency struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Levels maps 1-5 to a level definition. All competencies share the
	// same 1-5 scale.
	Levels map[int]Level `json:"levels"`

	RedFlags   []string `json:"red_flags,omitempty"`
	GreenFlags []string `json:"green_flags,omitempty"`

	ApplicableTypes []types.InterviewType `json:"applicable_types"`
}

// AppliesTo reports whether the competency is assessable in the given
// interview archetype.
func (c *Competency) AppliesTo(t types.InterviewType) bool {
	for _, a := range c.ApplicableTypes {
		if a == t {
			return true
		}
	}
	return false
}

// Get returns the competency definition with the given id. The boolean is
// false when the id is unknown; callers that can tolerate partial data
// (for example summary rendering) check it instead of failing.
func Get(id string) (*Competency, bool) {
	c, ok := catalog[id]
	return c, ok
}

// ForType returns all competencies applicable to an interview archetype,
// in catalog order.
func ForType(t types.InterviewType) []*Competency {
	var out []*Competency
	for _, id := range catalogOrder {
		if c := catalog[id]; c.AppliesTo(t) {
			out = append(out, c)
		}
	}
	return out
}

// IDs returns every competency id in catalog order.
func IDs() []string {
	out := make([]string, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}
