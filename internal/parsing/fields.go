package parsing

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-. ]?)?\(?\d{2,4}\)?[-. ]?\d{3,4}[-. ]?\d{3,4}`)

	// 2-5 tokens of letters, periods, hyphens and apostrophes.
	namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z.'-]*(\s+[A-Za-z][A-Za-z.'-]*){1,4}$`)
	// Fallback for the first line of the document.
	looseNamePattern = regexp.MustCompile(`^[A-Za-z\s.'-]{2,60}$`)
)

const (
	nameHeaderLines = 5
	maxNameWords    = 5
)

// ExtractEmail returns the first email address in text.
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone returns the first phone-number-like substring in text.
func ExtractPhone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// ExtractName guesses the candidate's name. It tries the first lines of the
// header section, then the line just above the first email address, then the
// first non-empty line of the document.
func ExtractName(sections Sections) string {
	if header, ok := sections.Get(SectionHeader); ok {
		for i, line := range nonEmptyLines(header) {
			if i >= nameHeaderLines {
				break
			}
			if looksLikeName(line) {
				return line
			}
		}
	}

	lines := nonEmptyLines(sections.Full())
	for i, line := range lines {
		if !emailPattern.MatchString(line) {
			continue
		}
		if i > 0 && looksLikeName(lines[i-1]) {
			return lines[i-1]
		}
		break
	}

	if len(lines) > 0 {
		first := lines[0]
		if looseNamePattern.MatchString(first) && len(strings.Fields(first)) <= maxNameWords {
			if _, isHeader := headerSection(first); !isHeader {
				return strings.Join(strings.Fields(first), " ")
			}
		}
	}
	return ""
}

func looksLikeName(line string) bool {
	if strings.ContainsAny(line, "@0123456789") {
		return false
	}
	if !namePattern.MatchString(line) {
		return false
	}
	_, isHeader := headerSection(line)
	return !isHeader
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(normalizeNewlines(text), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
