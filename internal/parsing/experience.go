package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// explicitExperiencePatterns capture the year count in group 1. First match wins.
var explicitExperiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*(?:years?|yrs?)\.?\s*(?:of\s*)?(?:experienced?|expertise|exp)\b`),
	regexp.MustCompile(`(?i)\bexperience\s*:?\s*(\d{1,2})\+?\s*(?:years?|yrs?)\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:in|of)\b`),
}

var (
	yearRangePattern = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*(?:[a-z]{3,9}\.?\s+)?((?:19|20)\d{2}|present|current|now)\b`)
	sincePattern     = regexp.MustCompile(`(?i)\bsince\s+((?:19|20)\d{2})\b`)
)

// ExtractExperienceYears estimates total professional experience. Rules are
// tried in order and only the first that yields a value is used: an explicit
// "N years of experience" phrase, the sum of year ranges in the experience
// section, a "since YYYY" phrase, then zero.
func ExtractExperienceYears(sections Sections, currentYear int) int {
	full := sections.Full()

	for _, re := range explicitExperiencePatterns {
		if m := re.FindStringSubmatch(full); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}

	if total := sumYearRanges(sections.SectionOrFull(SectionExperience), currentYear); total > 0 {
		return total
	}

	if m := sincePattern.FindStringSubmatch(full); m != nil {
		start, _ := strconv.Atoi(m[1])
		if years := currentYear - start; years > 0 {
			return years
		}
	}

	return 0
}

func sumYearRanges(text string, currentYear int) int {
	total := 0
	for _, m := range yearRangePattern.FindAllStringSubmatch(text, -1) {
		start, _ := strconv.Atoi(m[1])
		end := currentYear
		switch strings.ToLower(m[2]) {
		case "present", "current", "now":
		default:
			end, _ = strconv.Atoi(m[2])
		}
		if end >= start {
			total += end - start
		}
	}
	return total
}
