package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobRequirement is the caller-owned job record a candidate is scored against.
type JobRequirement struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	MinExperience  int      `json:"min_experience" validate:"gte=0"`
	EducationLevel string   `json:"education_level,omitempty"`
}

// JobSkills is the output of mining a job description for skills.
// Required and NiceToHave never share an entry.
type JobSkills struct {
	Required   []string `json:"required"`
	NiceToHave []string `json:"nice_to_have"`
}

// Validate checks the struct constraints on the job.
func (j *JobRequirement) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// RequiredEducation returns the lowest education level the requirement accepts
// and whether a requirement was given.
func (j *JobRequirement) RequiredEducation() (EducationLevel, bool) {
	if strings.TrimSpace(j.EducationLevel) == "" {
		return EducationNone, false
	}
	return MinimumEducationLevel(j.EducationLevel), true
}
