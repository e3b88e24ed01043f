package types

// ScoreBreakdown is the full, explainable result of scoring one profile against one job.
type ScoreBreakdown struct {
	TotalScore     float64            `json:"total_score"`
	MaxScore       float64            `json:"max_score"`
	SufficientData bool               `json:"sufficient_data"`
	Breakdown      Breakdown          `json:"breakdown"`
	Explanation    []string           `json:"explanation"`
	ScoringWeights map[string]float64 `json:"scoring_weights,omitempty"`
}

// Breakdown holds one entry per scoring dimension. All entries are nil when
// the profile had insufficient data.
type Breakdown struct {
	Skills            *SkillsScore     `json:"skills,omitempty"`
	Experience        *ExperienceScore `json:"experience,omitempty"`
	Education         *EducationScore  `json:"education,omitempty"`
	JobTitleRelevance *TitleScore      `json:"job_title_relevance,omitempty"`
}

// SkillsScore combines required and nice-to-have skill credit.
type SkillsScore struct {
	Score      float64             `json:"score"`
	Max        float64             `json:"max"`
	Required   RequiredSkillsScore `json:"required"`
	NiceToHave NiceToHaveScore     `json:"nice_to_have"`
}

// RequiredSkillsScore is the partial-credit required skills dimension.
type RequiredSkillsScore struct {
	Score         float64      `json:"score"`
	Max           float64      `json:"max"`
	Detail        string       `json:"detail,omitempty"`
	Matches       []SkillMatch `json:"matches,omitempty"`
	MatchedSkills []string     `json:"matched_skills"`
	PartialSkills []string     `json:"partial_skills"`
	MissingSkills []string     `json:"missing_skills"`
	MatchRatio    string       `json:"match_ratio"`
}

// SkillMatch records how a single required skill was credited.
type SkillMatch struct {
	Skill       string  `json:"skill"`
	Kind        string  `json:"kind"`
	Credit      float64 `json:"credit"`
	MatchedWith string  `json:"matched_with,omitempty"`
}

// NiceToHaveScore is the exact-match-only nice-to-have dimension.
type NiceToHaveScore struct {
	Score         float64  `json:"score"`
	Max           float64  `json:"max"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	MatchRatio    string   `json:"match_ratio"`
}

// ExperienceScore is the experience dimension. Score includes Bonus.
type ExperienceScore struct {
	Score          float64 `json:"score"`
	Max            float64 `json:"max"`
	BaseScore      float64 `json:"base_score"`
	Bonus          float64 `json:"bonus"`
	BonusMax       float64 `json:"bonus_max"`
	CandidateYears int     `json:"candidate_years"`
	RequiredYears  int     `json:"required_years"`
}

// EducationScore is the education dimension.
type EducationScore struct {
	Score              float64  `json:"score"`
	Max                float64  `json:"max"`
	Detail             string   `json:"detail,omitempty"`
	CandidateEducation []string `json:"candidate_education"`
	RequiredEducation  string   `json:"required_education,omitempty"`
}

// TitleScore is the job title keyword relevance dimension.
type TitleScore struct {
	Score            float64  `json:"score"`
	Max              float64  `json:"max"`
	MatchedKeywords  []string `json:"matched_keywords"`
	JobTitleKeywords []string `json:"job_title_keywords"`
}
