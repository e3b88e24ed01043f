package skills

import (
	"github.com/jonathan/resume-ats/internal/types"
)

// NiceToHaveProximity is the maximum character distance between a skill mention
// and a soft-requirement marker for the skill to count as nice-to-have.
// The value is a tunable heuristic carried over for score compatibility.
const NiceToHaveProximity = 200

// niceToHaveMarkers are phrases that soften a nearby requirement.
var niceToHaveMarkers = []string{
	"nice to have",
	"nice-to-have",
	"good to have",
	"good-to-have",
	"preferred",
	"bonus",
	"plus",
	"desired",
	"optional",
}

// ExtractJobSkills mines a job description for registered skills and splits
// them into required and nice-to-have by proximity to soft-requirement markers.
// Both lists hold canonical names in registry order.
//
// Every spelling is scanned as a whole word, including one and two letter
// ones, so prose like "go the extra mile" or "R&D" registers go and r, and the
// "js" in "Node.js" registers javascript. Such hits land in Required and count
// against the required-skills dimension.
func (r *Resolver) ExtractJobSkills(description string) types.JobSkills {
	result := types.JobSkills{
		Required:   []string{},
		NiceToHave: []string{},
	}
	if description == "" {
		return result
	}

	markers := r.markerPositions(description)

	for _, g := range r.kb.groups {
		idx := r.firstGroupIndex(description, g)
		if idx < 0 {
			continue
		}
		if nearMarker(idx, markers) {
			result.NiceToHave = append(result.NiceToHave, g.Canonical)
		} else {
			result.Required = append(result.Required, g.Canonical)
		}
	}

	return result
}

// firstGroupIndex returns the earliest whole-word occurrence of any spelling of g.
func (r *Resolver) firstGroupIndex(text string, g Group) int {
	best := r.FirstIndex(text, g.Canonical)
	for _, v := range g.Variants {
		idx := r.FirstIndex(text, v)
		if idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best
}

// markerPositions returns the offsets of every soft-requirement marker occurrence.
func (r *Resolver) markerPositions(text string) []int {
	var positions []int
	for _, m := range niceToHaveMarkers {
		for _, loc := range r.kb.pattern(m).FindAllStringSubmatchIndex(text, -1) {
			positions = append(positions, loc[2])
		}
	}
	return positions
}

func nearMarker(idx int, markers []int) bool {
	for _, m := range markers {
		d := idx - m
		if d < 0 {
			d = -d
		}
		if d < NiceToHaveProximity {
			return true
		}
	}
	return false
}
