// Package ranking scores candidate profiles against job requirements and
// ranks batches of resumes by score.
package ranking

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/resume-ats/internal/skills"
	"github.com/jonathan/resume-ats/internal/types"
)

// Dimension maxima. They sum to MaxScore.
const (
	MaxScore               = 100.0
	RequiredSkillsWeight   = 35.0
	NiceToHaveSkillsWeight = 5.0
	ExperienceWeight       = 25.0
	ExperienceBonusWeight  = 5.0
	EducationWeight        = 15.0
	JobTitleWeight         = 15.0
)

// ScoringWeights returns the weights reported alongside every sufficient score.
func ScoringWeights() map[string]float64 {
	return map[string]float64{
		"required_skills":     RequiredSkillsWeight,
		"nice_to_have_skills": NiceToHaveSkillsWeight,
		"experience":          ExperienceWeight,
		"experience_bonus":    ExperienceBonusWeight,
		"education":           EducationWeight,
		"job_title_relevance": JobTitleWeight,
	}
}

// Scorer computes ATS scores. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	resolver *skills.Resolver
}

// NewScorer returns a Scorer backed by r, or by skills.Default when r is nil.
func NewScorer(r *skills.Resolver) *Scorer {
	if r == nil {
		r = skills.Default
	}
	return &Scorer{resolver: r}
}

var defaultScorer = NewScorer(nil)

// Score scores profile against job with the default skill resolver.
func Score(profile *types.CandidateProfile, job *types.JobRequirement) *types.ScoreBreakdown {
	return defaultScorer.Score(profile, job)
}

// Score computes the weighted, explained score of profile against job.
// Profiles carrying an error score zero with SufficientData false.
func (s *Scorer) Score(profile *types.CandidateProfile, job *types.JobRequirement) *types.ScoreBreakdown {
	if profile.HasError() {
		return &types.ScoreBreakdown{
			TotalScore:     0,
			MaxScore:       MaxScore,
			SufficientData: false,
			Breakdown:      types.Breakdown{},
			Explanation:    []string{types.ErrInsufficientData},
		}
	}
	if job == nil {
		job = &types.JobRequirement{}
	}

	jobSkills := s.resolver.ExtractJobSkills(job.Description)

	skillsScore := s.scoreSkills(profile, job, jobSkills)
	experience := scoreExperience(profile.ExperienceYears, job.MinExperience)
	education := scoreEducation(profile, job)
	title := scoreJobTitle(job.Title, profile.RawText)

	total := math.Min(MaxScore, round2(skillsScore.Score+experience.Score+education.Score+title.Score))

	return &types.ScoreBreakdown{
		TotalScore:     total,
		MaxScore:       MaxScore,
		SufficientData: true,
		Breakdown: types.Breakdown{
			Skills:            skillsScore,
			Experience:        experience,
			Education:         education,
			JobTitleRelevance: title,
		},
		Explanation: []string{
			explainRequiredSkills(&skillsScore.Required),
			explainNiceToHave(&skillsScore.NiceToHave),
			explainExperience(experience),
			explainEducation(education),
			explainJobTitle(title, job.Title),
		},
		ScoringWeights: ScoringWeights(),
	}
}

// scoreSkills combines the required and nice-to-have dimensions.
func (s *Scorer) scoreSkills(profile *types.CandidateProfile, job *types.JobRequirement, jobSkills types.JobSkills) *types.SkillsScore {
	required := s.resolver.CanonicalizeAll(append(append([]string{}, job.RequiredSkills...), jobSkills.Required...))

	requiredSet := make(map[string]bool, len(required))
	for _, r := range required {
		requiredSet[r] = true
	}
	var niceToHave []string
	for _, n := range s.resolver.CanonicalizeAll(jobSkills.NiceToHave) {
		if !requiredSet[n] {
			niceToHave = append(niceToHave, n)
		}
	}

	req := s.scoreRequiredSkills(profile, required)
	nice := s.scoreNiceToHave(profile, niceToHave)

	return &types.SkillsScore{
		Score:      round2(req.Score + nice.Score),
		Max:        RequiredSkillsWeight + NiceToHaveSkillsWeight,
		Required:   req,
		NiceToHave: nice,
	}
}

func (s *Scorer) scoreRequiredSkills(profile *types.CandidateProfile, required []string) types.RequiredSkillsScore {
	out := types.RequiredSkillsScore{
		Max:           RequiredSkillsWeight,
		MatchedSkills: []string{},
		PartialSkills: []string{},
		MissingSkills: []string{},
	}

	if len(required) == 0 {
		out.Score = RequiredSkillsWeight
		out.Detail = "No specific skills required"
		out.MatchRatio = "0/0"
		return out
	}

	sum := 0.0
	for _, skill := range required {
		m := s.resolver.ScoreMatch(skill, profile.Skills, profile.RawText)
		sum += m.Score()
		out.Matches = append(out.Matches, types.SkillMatch{
			Skill:       skill,
			Kind:        m.Kind.String(),
			Credit:      m.Score(),
			MatchedWith: m.MatchedWith,
		})

		switch m.Kind {
		case skills.MatchExact:
			out.MatchedSkills = append(out.MatchedSkills, skill)
		case skills.MatchFuzzy, skills.MatchCategory:
			out.PartialSkills = append(out.PartialSkills, skill)
		default:
			out.MissingSkills = append(out.MissingSkills, skill)
		}
	}

	out.Score = round2(sum / float64(len(required)) * RequiredSkillsWeight)
	out.MatchRatio = fmt.Sprintf("%d/%d", len(out.MatchedSkills), len(required))
	return out
}

// scoreNiceToHave credits exact matches only.
func (s *Scorer) scoreNiceToHave(profile *types.CandidateProfile, niceToHave []string) types.NiceToHaveScore {
	out := types.NiceToHaveScore{
		Max:           NiceToHaveSkillsWeight,
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}

	for _, skill := range niceToHave {
		if s.resolver.TextContainsSkill(skill, profile.Skills, profile.RawText) {
			out.MatchedSkills = append(out.MatchedSkills, skill)
		} else {
			out.MissingSkills = append(out.MissingSkills, skill)
		}
	}

	out.MatchRatio = fmt.Sprintf("%d/%d", len(out.MatchedSkills), len(niceToHave))
	if len(niceToHave) > 0 {
		out.Score = round2(float64(len(out.MatchedSkills)) / float64(len(niceToHave)) * NiceToHaveSkillsWeight)
	}
	return out
}

func explainRequiredSkills(r *types.RequiredSkillsScore) string {
	if r.Detail != "" {
		return fmt.Sprintf("Required skills: %s/%s - %s.", fmtScore(r.Score), fmtScore(r.Max), r.Detail)
	}

	partial := make([]string, 0, len(r.PartialSkills))
	for _, m := range r.Matches {
		if m.Kind == skills.MatchFuzzy.String() || m.Kind == skills.MatchCategory.String() {
			partial = append(partial, fmt.Sprintf("%s (%s)", m.Skill, m.Kind))
		}
	}
	return fmt.Sprintf("Required skills: %s/%s - matched %d of %d required skills [%s]. Partial: [%s]. Missing: [%s].",
		fmtScore(r.Score), fmtScore(r.Max),
		len(r.MatchedSkills), len(r.Matches),
		listOrNone(r.MatchedSkills), listOrNone(partial), listOrNone(r.MissingSkills))
}

func explainNiceToHave(n *types.NiceToHaveScore) string {
	if len(n.MatchedSkills)+len(n.MissingSkills) == 0 {
		return fmt.Sprintf("Nice-to-have skills: %s/%s - none mentioned in the job description.", fmtScore(n.Score), fmtScore(n.Max))
	}
	return fmt.Sprintf("Nice-to-have skills: %s/%s - matched [%s]. Missing: [%s].",
		fmtScore(n.Score), fmtScore(n.Max), listOrNone(n.MatchedSkills), listOrNone(n.MissingSkills))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func fmtScore(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
