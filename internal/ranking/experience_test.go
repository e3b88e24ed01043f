package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreExperience(t *testing.T) {
	tests := []struct {
		name      string
		candidate int
		required  int
		base      float64
		bonus     float64
		score     float64
	}{
		{"no requirement", 5, 0, 25, 0, 25},
		{"no requirement no experience", 0, 0, 25, 0, 25},
		{"exactly meets", 3, 3, 25, 0, 25},
		{"double earns full bonus", 6, 3, 25, 5, 30},
		{"bonus is capped", 10, 3, 25, 5, 30},
		{"partial bonus", 4, 3, 25, 1.67, 26.67},
		{"half of requirement", 2, 4, 12.5, 0, 12.5},
		{"a third of requirement", 1, 3, 8.33, 0, 8.33},
		{"none against requirement", 0, 4, 0, 0, 0},
		{"negative treated as zero", -2, 4, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreExperience(tt.candidate, tt.required)
			assert.Equal(t, tt.base, got.BaseScore)
			assert.Equal(t, tt.bonus, got.Bonus)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, 30.0, got.Max)
			assert.Equal(t, 5.0, got.BonusMax)
		})
	}
}

func TestExplainExperience(t *testing.T) {
	assert.Equal(t,
		"Experience: 30/30 - candidate has 6 years, job requires 3 years. Includes 5 bonus for exceeding the requirement.",
		explainExperience(scoreExperience(6, 3)))
	assert.Equal(t,
		"Experience: 12.5/30 - candidate has 2 years, job requires 4 years.",
		explainExperience(scoreExperience(2, 4)))
}
