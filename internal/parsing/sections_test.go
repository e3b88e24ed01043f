package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSections_SampleResume(t *testing.T) {
	s := SplitSections(sampleResume)

	assert.Equal(t, []string{"education", "experience", "skills", "summary"}, s.Detected())
	assert.Equal(t, sampleResume, s.Full())

	header, ok := s.Get(SectionHeader)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(header, "Jane Doe"))
	assert.NotContains(t, header, "Summary")

	edu, _ := s.Get(SectionEducation)
	assert.Equal(t, "B.S. in Computer Science, State University", edu)

	exp, _ := s.Get(SectionExperience)
	assert.Contains(t, exp, "2019 - present")
	assert.NotContains(t, exp, "Computer Science")
}

func TestSplitSections_HeaderVariants(t *testing.T) {
	tests := []struct {
		line    string
		section string
	}{
		{"WORK EXPERIENCE", SectionExperience},
		{"Professional Experience:", SectionExperience},
		{"Employment History", SectionExperience},
		{"## Education", SectionEducation},
		{"Academic Background", SectionEducation},
		{"Technical Skills", SectionSkills},
		{"Skills & Tools", SectionSkills},
		{"Core Competencies", SectionSkills},
		{"Professional Summary", SectionSummary},
		{"Objective", SectionSummary},
		{"Personal Projects", SectionProjects},
		{"Licenses & Certifications", SectionCertifications},
		{"Certification", SectionCertifications},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, ok := headerSection(tt.line)
			assert.True(t, ok)
			assert.Equal(t, tt.section, name)
		})
	}
}

func TestSplitSections_NonHeaders(t *testing.T) {
	lines := []string{
		"",
		"Experience building payment systems at scale",
		"Skills: Go, Rust",
		"My education was in physics",
		strings.Repeat("experience ", 6),
	}
	for _, line := range lines {
		_, ok := headerSection(line)
		assert.False(t, ok, "%q", line)
	}
}

func TestSplitSections_RepeatedSectionAppends(t *testing.T) {
	text := "Skills\nGo\nExperience\nAcme 2020 - 2022\nSkills\nRust"
	s := SplitSections(text)

	skills, _ := s.Get(SectionSkills)
	assert.Equal(t, "Go\nRust", skills)
}

func TestSplitSections_NoHeaders(t *testing.T) {
	text := "Just a paragraph of text\nwith two lines"
	s := SplitSections(text)

	assert.Empty(t, s.Detected())
	header, _ := s.Get(SectionHeader)
	assert.Equal(t, text, header)
	assert.Equal(t, text, s.SectionOrFull(SectionEducation))
}

func TestSplitSections_EmptySectionFallsBackToFull(t *testing.T) {
	text := "Education\nExperience\n2018 - 2020"
	s := SplitSections(text)

	assert.True(t, s.Has(SectionEducation))
	assert.Equal(t, text, s.SectionOrFull(SectionEducation))
	assert.Equal(t, "2018 - 2020", s.SectionOrFull(SectionExperience))
}

func TestSplitSections_Deterministic(t *testing.T) {
	a := SplitSections(sampleResume)
	b := SplitSections(sampleResume)
	assert.Equal(t, a, b)
}

func TestSplitSections_CRLF(t *testing.T) {
	s := SplitSections("Name Here\r\nSkills\r\nGo, Rust\r\n")
	skills, _ := s.Get(SectionSkills)
	assert.Equal(t, "Go, Rust", skills)
}
