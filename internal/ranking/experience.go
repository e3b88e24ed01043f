package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-ats/internal/types"
)

// scoreExperience awards the full base when the requirement is met or absent,
// a bonus for exceeding it (capped at double the requirement), and pro-rated
// credit below it.
func scoreExperience(candidateYears, requiredYears int) *types.ExperienceScore {
	candidateYears = max(candidateYears, 0)
	requiredYears = max(requiredYears, 0)

	out := &types.ExperienceScore{
		Max:            ExperienceWeight + ExperienceBonusWeight,
		BonusMax:       ExperienceBonusWeight,
		CandidateYears: candidateYears,
		RequiredYears:  requiredYears,
	}

	c, r := float64(candidateYears), float64(requiredYears)
	switch {
	case requiredYears == 0:
		out.BaseScore = ExperienceWeight
	case candidateYears >= requiredYears:
		out.BaseScore = ExperienceWeight
		if candidateYears > requiredYears {
			out.Bonus = round2(math.Min((c-r)/r, 1) * ExperienceBonusWeight)
		}
	case candidateYears > 0:
		out.BaseScore = round2(c / r * ExperienceWeight)
	}

	out.Score = round2(out.BaseScore + out.Bonus)
	return out
}

func explainExperience(e *types.ExperienceScore) string {
	line := fmt.Sprintf("Experience: %s/%s - candidate has %d years, job requires %d years.",
		fmtScore(e.Score), fmtScore(e.Max), e.CandidateYears, e.RequiredYears)
	if e.Bonus > 0 {
		line += fmt.Sprintf(" Includes %s bonus for exceeding the requirement.", fmtScore(e.Bonus))
	}
	return line
}
