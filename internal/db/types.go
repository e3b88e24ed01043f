package db

import (
	"github.com/google/uuid"

	"github.com/jonathan/resume-ats/internal/types"
)

// JobRecord is a stored job and its scoring requirements.
type JobRecord struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	types.JobRequirement
}

// Requirement returns a copy of the scoring requirement.
func (r *JobRecord) Requirement() *types.JobRequirement {
	req := r.JobRequirement
	req.RequiredSkills = append([]string{}, r.RequiredSkills...)
	return &req
}
