package parsing

import (
	"regexp"

	"github.com/jonathan/resume-ats/internal/types"
)

type degreeRule struct {
	pattern *regexp.Regexp
	level   types.EducationLevel
}

// degreeRules are tried highest level first. Spelled-out degree names match in
// any case. Bare abbreviations must be upper-case so words like "me" or "be"
// in running prose do not count; dotted forms ("b.a.") and "ms in"/"bs of"
// match in any case. "associate" needs a following degree/of/in since it is
// also a job title.
var degreeRules = []degreeRule{
	{regexp.MustCompile(`\b(?i:ph\.?\s?d|doctorate|doctoral|doctor\s+of)\b`), types.EducationPhD},
	{regexp.MustCompile(`\b(?i:master'?s?|m\.b\.a|mba|m\.?tech|m\.?sc|m\.[se]|ms\s+(?:in|of))\b|\b(M\.?S|M\.?E)\b`), types.EducationMasters},
	{regexp.MustCompile(`\b(?i:bachelor'?s?|b\.?tech|b\.?com|b\.?sc|b\.[sae]|(?:bs|ba)\s+(?:in|of))\b|\b(B\.?S|B\.?A|B\.?E)\b`), types.EducationBachelors},
	{regexp.MustCompile(`\b(?i:diploma|associate'?s?\s+(degree|of|in)|associate's)\b`), types.EducationDiploma},
}

// ExtractEducation returns the degree levels mentioned in the education
// section, or in the whole text when no education section was found.
// Levels are ordered highest first.
func ExtractEducation(sections Sections) []types.EducationLevel {
	text := sections.SectionOrFull(SectionEducation)

	levels := []types.EducationLevel{}
	for _, rule := range degreeRules {
		if rule.pattern.MatchString(text) {
			levels = append(levels, rule.level)
		}
	}
	return levels
}
