package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-ats/internal/skills"
)

const (
	minSkillTokenLen = 2
	maxSkillTokenLen = 40
)

var (
	skillSeparators = regexp.MustCompile(`[,|•·;\n]`)
	bulletPrefix    = regexp.MustCompile(`^[\s\-*•·▪◦‣>]+`)
	labelPrefix     = regexp.MustCompile(`^[A-Za-z][A-Za-z /&-]{0,30}:\s*`)
	numericToken    = regexp.MustCompile(`^[\d.,\s%+]+$`)
)

// ExtractSkills unions a knowledge-base keyword scan of the whole text with the
// tokens of the skills section. Results are canonical and deduplicated.
func ExtractSkills(r *skills.Resolver, sections Sections) []string {
	lower := strings.ToLower(sections.Full())

	var found []string
	for _, term := range r.KnowledgeBase().ScanTerms() {
		if r.ContainsWord(lower, term) {
			found = append(found, term)
		}
	}

	if sections.Has(SectionSkills) {
		text, _ := sections.Get(SectionSkills)
		found = append(found, skillTokens(text)...)
	}

	return r.CanonicalizeAll(found)
}

// skillTokens splits a skills section into candidate skill names.
func skillTokens(text string) []string {
	var tokens []string
	for _, raw := range skillSeparators.Split(text, -1) {
		tok := bulletPrefix.ReplaceAllString(strings.TrimSpace(raw), "")
		tok = labelPrefix.ReplaceAllString(tok, "")
		tok = strings.TrimRight(strings.TrimSpace(tok), ".")
		n := len([]rune(tok))
		if n < minSkillTokenLen || n > maxSkillTokenLen {
			continue
		}
		if numericToken.MatchString(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
