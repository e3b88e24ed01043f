package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// EducationLevel is an ordered degree level. Zero means no recognized level.
type EducationLevel int

// Education levels in rank order.
const (
	EducationNone EducationLevel = iota
	EducationDiploma
	EducationBachelors
	EducationMasters
	EducationPhD
)

var educationNames = map[EducationLevel]string{
	EducationDiploma:   "diploma",
	EducationBachelors: "bachelors",
	EducationMasters:   "masters",
	EducationPhD:       "phd",
}

// Rank returns the numeric rank used for meets-or-exceeds comparisons.
func (l EducationLevel) Rank() int {
	return int(l)
}

// String returns the canonical level name.
func (l EducationLevel) String() string {
	if name, ok := educationNames[l]; ok {
		return name
	}
	return "none"
}

// MarshalJSON encodes the level as its canonical name.
func (l EducationLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level name, accepting the spellings ParseEducationLevel accepts.
func (l *EducationLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("education level must be a string: %w", err)
	}
	*l = ParseEducationLevel(s)
	return nil
}

// ParseEducationLevel normalizes a free-form degree string to a level.
// Unrecognized strings map to EducationNone.
func ParseEducationLevel(degree string) EducationLevel {
	degree = strings.ToLower(strings.TrimSpace(degree))
	if degree == "" {
		return EducationNone
	}

	switch degree {
	case "ms", "msc", "m.s.", "mba", "mtech", "m.tech", "me":
		return EducationMasters
	case "bs", "bsc", "b.s.", "ba", "b.a.", "btech", "b.tech", "be", "bcom":
		return EducationBachelors
	}

	switch {
	case strings.Contains(degree, "phd") || strings.Contains(degree, "ph.d") || strings.Contains(degree, "doctor"):
		return EducationPhD
	case strings.Contains(degree, "master"):
		return EducationMasters
	case strings.Contains(degree, "bachelor"):
		return EducationBachelors
	case strings.Contains(degree, "diploma") || strings.Contains(degree, "associate"):
		return EducationDiploma
	default:
		return EducationNone
	}
}

var requirementSeparators = regexp.MustCompile(`[^a-z0-9.']+`)

// MinimumEducationLevel returns the lowest level named in a free-form job
// requirement. Alternatives ("Bachelor's or Master's") and preferences
// ("PhD preferred") never raise the bar above the lowest acceptable degree.
func MinimumEducationLevel(requirement string) EducationLevel {
	lowest := EducationNone
	for _, tok := range requirementSeparators.Split(strings.ToLower(requirement), -1) {
		// "me" and "be" are ordinary words in requirement prose.
		if tok == "me" || tok == "be" {
			continue
		}
		level := ParseEducationLevel(tok)
		if level != EducationNone && (lowest == EducationNone || level < lowest) {
			lowest = level
		}
	}
	return lowest
}

// MaxEducationLevel returns the highest level in levels.
func MaxEducationLevel(levels []EducationLevel) EducationLevel {
	highest := EducationNone
	for _, l := range levels {
		if l > highest {
			highest = l
		}
	}
	return highest
}

// EducationNames renders levels as their canonical names.
func EducationNames(levels []EducationLevel) []string {
	names := make([]string, 0, len(levels))
	for _, l := range levels {
		names = append(names, l.String())
	}
	return names
}
