// Package types provides type definitions for structured data used throughout the ATS engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// Parser version tags recorded on every profile.
const (
	ParserVersionRules  = "rules-v2"
	ParserVersionOracle = "llm-v1"
)

// ErrInsufficientData is the profile-level error recorded when the resume text
// carries too little signal to be scored.
const ErrInsufficientData = "insufficient data"

// CandidateProfile is the structured view of a parsed resume.
// When Error is set, every other field is best-effort only and scoring treats
// the profile as insufficient data.
type CandidateProfile struct {
	Name             *string          `json:"name"`
	Email            *string          `json:"email"`
	Phone            *string          `json:"phone"`
	Skills           []string         `json:"skills"`
	Education        []EducationLevel `json:"education"`
	ExperienceYears  int              `json:"experience_years" validate:"gte=0,lte=80"`
	RawText          string           `json:"raw_text"`
	SectionsDetected []string         `json:"sections_detected"`
	ParserVersion    string           `json:"parser_version"`
	Error            string           `json:"error,omitempty"`

	// Enriched fields, only populated by the oracle parser.
	Summary          string             `json:"summary,omitempty"`
	Certifications   []string           `json:"certifications,omitempty"`
	ExperienceDetail []ExperienceDetail `json:"experience_detail,omitempty"`
}

// ExperienceDetail is a single work history entry reported by the oracle parser.
type ExperienceDetail struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartYear   int    `json:"start_year,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
	Description string `json:"description,omitempty"`
}

// InsufficientProfile returns the error profile for text that failed the minimum length gate.
func InsufficientProfile(rawText string) *CandidateProfile {
	return &CandidateProfile{
		RawText: rawText,
		Error:   ErrInsufficientData,
	}
}

// ErrorProfile returns a profile carrying an arbitrary error message.
func ErrorProfile(rawText, message string) *CandidateProfile {
	return &CandidateProfile{
		RawText: rawText,
		Error:   message,
	}
}

// HasError reports whether the profile should be treated as insufficient data.
func (p *CandidateProfile) HasError() bool {
	return p == nil || p.Error != ""
}

// HighestEducation returns the highest education level held, or EducationNone.
func (p *CandidateProfile) HighestEducation() EducationLevel {
	if p == nil {
		return EducationNone
	}
	return MaxEducationLevel(p.Education)
}

// Validate checks the struct constraints on the profile.
func (p *CandidateProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
