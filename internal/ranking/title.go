package ranking

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/types"
)

var titleSeparators = regexp.MustCompile(`[\s\p{P}]+`)

const minTitleKeywordLen = 3

// titleKeywords splits a job title into lower-case keywords longer than two
// characters. Repeated tokens are kept so each occurrence weighs in the ratio.
func titleKeywords(title string) []string {
	keywords := []string{}
	for _, tok := range titleSeparators.Split(strings.ToLower(title), -1) {
		if utf8.RuneCountInString(tok) < minTitleKeywordLen {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

// scoreJobTitle credits title keywords found anywhere in the resume text.
// A title with no usable keywords earns full credit.
func scoreJobTitle(title, rawText string) *types.TitleScore {
	keywords := titleKeywords(title)
	out := &types.TitleScore{
		Max:              JobTitleWeight,
		MatchedKeywords:  []string{},
		JobTitleKeywords: keywords,
	}

	if len(keywords) == 0 {
		out.Score = JobTitleWeight
		return out
	}

	lower := strings.ToLower(rawText)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			out.MatchedKeywords = append(out.MatchedKeywords, k)
		}
	}
	out.Score = round2(float64(len(out.MatchedKeywords)) / float64(len(keywords)) * JobTitleWeight)
	return out
}

func explainJobTitle(t *types.TitleScore, title string) string {
	return fmt.Sprintf("Job title relevance: %s/%s - matched keywords [%s] from job title %q.",
		fmtScore(t.Score), fmtScore(t.Max), listOrNone(t.MatchedKeywords), title)
}
