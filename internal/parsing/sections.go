package parsing

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Section names.
const (
	SectionHeader         = "header"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionSummary        = "summary"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"

	// SectionFull holds the whole document for extractors that search everywhere.
	SectionFull = "full"
)

// maxHeaderLen bounds the trimmed length of a line that may be a section header.
const maxHeaderLen = 60

type sectionRule struct {
	name     string
	patterns []*regexp.Regexp
}

// sectionRules are matched against a lower-cased header line with decoration removed.
var sectionRules = []sectionRule{
	{SectionExperience, compileAll(
		`^((work|professional|relevant|industry)\s+)?experience$`,
		`^(work|employment|career|professional)\s+history$`,
		`^employment$`,
	)},
	{SectionEducation, compileAll(
		`^education(al)?(\s+(background|history|details))?$`,
		`^education\s*(&|and)\s*training$`,
		`^academic(s|\s+background|\s+qualifications)?$`,
		`^qualifications$`,
	)},
	{SectionSkills, compileAll(
		`^((technical|core|key|professional|relevant)\s+)?skills(\s*(&|and)\s*(tools|technologies|expertise|abilities))?$`,
		`^(core\s+|technical\s+)?competenc(y|ies)$`,
		`^(technologies|tools)(\s*(&|and)\s*(tools|technologies))?$`,
		`^tech(nical)?\s+stack$`,
		`^areas\s+of\s+expertise$`,
	)},
	{SectionSummary, compileAll(
		`^((professional|career|executive)\s+)?summary$`,
		`^(career\s+)?objective$`,
		`^(professional\s+)?profile$`,
		`^about(\s+me)?$`,
	)},
	{SectionProjects, compileAll(
		`^((personal|key|selected|academic|side|notable)\s+)?projects$`,
		`^project\s+experience$`,
	)},
	{SectionCertifications, compileAll(
		`^certifications?$`,
		`^licen[cs]es(\s*(&|and)\s*certifications?)?$`,
		`^certifications?\s*(&|and)\s*(licen[cs]es|courses|training)$`,
		`^courses$`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Sections maps section names to their accumulated text.
type Sections struct {
	text     map[string]string
	detected map[string]bool
}

// SplitSections segments resume text into labeled zones. Lines before any
// recognized header go to SectionHeader; the whole document is kept under SectionFull.
func SplitSections(text string) Sections {
	s := Sections{
		text:     make(map[string]string),
		detected: make(map[string]bool),
	}
	s.text[SectionFull] = text

	current := SectionHeader
	buf := map[string]*strings.Builder{}
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		if name, ok := headerSection(line); ok {
			current = name
			s.detected[name] = true
			continue
		}
		b, ok := buf[current]
		if !ok {
			b = &strings.Builder{}
			buf[current] = b
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for name, b := range buf {
		s.text[name] = strings.TrimSpace(b.String())
	}
	for name := range s.detected {
		if _, ok := s.text[name]; !ok {
			s.text[name] = ""
		}
	}
	return s
}

// Get returns the text of a section and whether it exists.
func (s Sections) Get(name string) (string, bool) {
	t, ok := s.text[name]
	return t, ok
}

// Full returns the whole document.
func (s Sections) Full() string {
	return s.text[SectionFull]
}

// Has reports whether a header for the named section was seen.
func (s Sections) Has(name string) bool {
	return s.detected[name]
}

// Detected returns the recognized section names, sorted.
func (s Sections) Detected() []string {
	out := make([]string, 0, len(s.detected))
	for name := range s.detected {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SectionOrFull returns the named section when it was detected and is non-empty,
// otherwise the whole document.
func (s Sections) SectionOrFull(name string) string {
	if t, ok := s.text[name]; ok && s.detected[name] && strings.TrimSpace(t) != "" {
		return t
	}
	return s.Full()
}

// headerSection reports whether line is a recognized section header.
func headerSection(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || utf8.RuneCountInString(trimmed) >= maxHeaderLen {
		return "", false
	}
	key := strings.ToLower(strings.Trim(trimmed, " \t:-–—#*=_|•"))
	key = strings.Join(strings.Fields(key), " ")
	for _, rule := range sectionRules {
		for _, re := range rule.patterns {
			if re.MatchString(key) {
				return rule.name, true
			}
		}
	}
	return "", false
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
