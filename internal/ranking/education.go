package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-ats/internal/types"
)

// scoreEducation compares the candidate's highest degree with the job's
// requirement. An unrecognized requirement has rank zero and is always met.
func scoreEducation(profile *types.CandidateProfile, job *types.JobRequirement) *types.EducationScore {
	out := &types.EducationScore{
		Max:                EducationWeight,
		CandidateEducation: types.EducationNames(profile.Education),
	}

	required, ok := job.RequiredEducation()
	if !ok {
		out.Score = EducationWeight
		out.Detail = "No education requirement specified"
		return out
	}
	out.RequiredEducation = strings.ToLower(strings.TrimSpace(job.EducationLevel))

	candidateRank := profile.HighestEducation().Rank()
	requiredRank := required.Rank()
	switch {
	case candidateRank >= requiredRank:
		out.Score = EducationWeight
	case candidateRank > 0:
		out.Score = round2(float64(candidateRank) / float64(requiredRank) * EducationWeight)
	}
	return out
}

func explainEducation(e *types.EducationScore) string {
	if e.Detail != "" {
		return fmt.Sprintf("Education: %s/%s - %s.", fmtScore(e.Score), fmtScore(e.Max), e.Detail)
	}
	held := "none detected"
	if len(e.CandidateEducation) > 0 {
		held = strings.Join(e.CandidateEducation, ", ")
	}
	return fmt.Sprintf("Education: %s/%s - candidate has [%s], job requires %s.",
		fmtScore(e.Score), fmtScore(e.Max), held, e.RequiredEducation)
}
