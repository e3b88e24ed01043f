package skills

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultMaxEditDistance is the fuzzy match threshold.
const DefaultMaxEditDistance = 2

const (
	fuzzyMinSkillLen     = 5
	fuzzyMinCandidateLen = 4
)

var frameworkSuffix = regexp.MustCompile(`\.(js|ts)$`)

// Default is the process-wide resolver over DefaultGroups. It is built during
// package initialization and is read-only afterwards.
var Default = NewResolver(MustKnowledgeBase(DefaultGroups))

// MatchKind is the tier a required skill was credited at.
type MatchKind int

// Match tiers, weakest first.
const (
	MatchNone MatchKind = iota
	MatchCategory
	MatchFuzzy
	MatchExact
)

// Weight returns the credit awarded for the tier.
func (k MatchKind) Weight() float64 {
	switch k {
	case MatchExact:
		return 1.0
	case MatchFuzzy:
		return 0.8
	case MatchCategory:
		return 0.3
	default:
		return 0
	}
}

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	case MatchCategory:
		return "category"
	default:
		return "none"
	}
}

// Match is the result of ScoreMatch. MatchedWith names the candidate skill,
// variant or category that earned the credit.
type Match struct {
	Kind        MatchKind
	MatchedWith string
}

// Score returns the numeric credit of the match.
func (m Match) Score() float64 {
	return m.Kind.Weight()
}

// Resolver answers canonicalization and matching queries against a knowledge base.
type Resolver struct {
	kb *KnowledgeBase
}

// NewResolver wraps kb.
func NewResolver(kb *KnowledgeBase) *Resolver {
	return &Resolver{kb: kb}
}

// KnowledgeBase returns the underlying registry.
func (r *Resolver) KnowledgeBase() *KnowledgeBase {
	return r.kb
}

// Canonicalize folds a term to its canonical skill. Unknown terms pass through
// lower-cased and trimmed.
func (r *Resolver) Canonicalize(term string) string {
	t := normalizeTerm(term)
	if c, ok := r.kb.lookup(t); ok {
		return c
	}
	return t
}

// CanonicalizeAll canonicalizes terms, dropping empties and duplicates while keeping order.
func (r *Resolver) CanonicalizeAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		c := r.Canonicalize(t)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// CategoryOf returns the category of skill, or CategoryNone.
func (r *Resolver) CategoryOf(skill string) Category {
	g, ok := r.kb.group(r.Canonicalize(skill))
	if !ok {
		return CategoryNone
	}
	return g.Category
}

// VariantsOf returns the canonical form, the input spelling, every registered
// variant and the form with a trailing .js/.ts removed. Order is stable.
func (r *Resolver) VariantsOf(skill string) []string {
	lower := normalizeTerm(skill)
	canonical := r.Canonicalize(lower)

	variants := make([]string, 0, 6)
	seen := make(map[string]bool)
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		variants = append(variants, v)
	}

	add(canonical)
	add(lower)
	if g, ok := r.kb.group(canonical); ok {
		for _, v := range g.Variants {
			add(v)
		}
	}
	add(frameworkSuffix.ReplaceAllString(lower, ""))

	return variants
}

// TextContainsSkill reports whether any variant of skill is one of
// candidateSkills or appears as a whole word in rawText.
func (r *Resolver) TextContainsSkill(skill string, candidateSkills []string, rawText string) bool {
	_, ok := r.findExact(skill, lowerSet(candidateSkills), rawText)
	return ok
}

func (r *Resolver) findExact(skill string, candidates map[string]bool, rawText string) (string, bool) {
	variants := r.VariantsOf(skill)
	for _, v := range variants {
		if candidates[v] {
			return v, true
		}
	}
	if rawText == "" {
		return "", false
	}
	for _, v := range variants {
		if r.kb.pattern(v).MatchString(rawText) {
			return v, true
		}
	}
	return "", false
}

// FuzzyMatch returns the first candidate within maxDistance edits of skill.
// Skills shorter than five characters never fuzzy match, and candidates
// shorter than four characters are skipped.
func (r *Resolver) FuzzyMatch(skill string, candidateSkills []string, maxDistance int) (string, bool) {
	lower := normalizeTerm(skill)
	if utf8.RuneCountInString(lower) < fuzzyMinSkillLen {
		return "", false
	}
	for _, cs := range candidateSkills {
		cs = normalizeTerm(cs)
		if utf8.RuneCountInString(cs) < fuzzyMinCandidateLen {
			continue
		}
		if levenshtein.ComputeDistance(lower, cs) <= maxDistance {
			return cs, true
		}
	}
	return "", false
}

// ScoreMatch grades how well the candidate evidences requiredSkill:
// exact (synonym or whole word in text), fuzzy, same category, or none.
func (r *Resolver) ScoreMatch(requiredSkill string, candidateSkills []string, rawText string) Match {
	if v, ok := r.findExact(requiredSkill, lowerSet(candidateSkills), rawText); ok {
		return Match{Kind: MatchExact, MatchedWith: v}
	}
	if cs, ok := r.FuzzyMatch(requiredSkill, candidateSkills, DefaultMaxEditDistance); ok {
		return Match{Kind: MatchFuzzy, MatchedWith: cs}
	}
	if cat := r.CategoryOf(requiredSkill); cat != CategoryNone {
		for _, cs := range candidateSkills {
			if r.CategoryOf(cs) == cat {
				return Match{Kind: MatchCategory, MatchedWith: string(cat)}
			}
		}
	}
	return Match{Kind: MatchNone}
}

// ContainsWord reports whether term occurs in text as a whole word, case-insensitively.
func (r *Resolver) ContainsWord(text, term string) bool {
	return r.kb.pattern(normalizeTerm(term)).MatchString(text)
}

// FirstIndex returns the byte offset of the first whole-word occurrence of term in text, or -1.
func (r *Resolver) FirstIndex(text, term string) int {
	loc := r.kb.pattern(normalizeTerm(term)).FindStringSubmatchIndex(text)
	if loc == nil {
		return -1
	}
	return loc[2]
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}
