// Package oracle implements the LLM-backed resume parser that the rule-based
// parser may consult before falling back to its own extractors.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/prompts"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/skills"
	"github.com/jonathan/resume-ats/internal/types"
)

const responseLogLimit = 500

// Oracle asks a language model to parse resume text into a profile.
// It satisfies parsing.Oracle.
type Oracle struct {
	client   llm.Client
	tier     llm.ModelTier
	resolver *skills.Resolver
	logger   *zap.Logger
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithTier selects the model tier used for parsing.
func WithTier(tier llm.ModelTier) Option {
	return func(o *Oracle) { o.tier = tier }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Oracle) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithResolver sets the skill resolver used to canonicalize returned skills.
func WithResolver(r *skills.Resolver) Option {
	return func(o *Oracle) {
		if r != nil {
			o.resolver = r
		}
	}
}

// New returns an Oracle backed by client.
func New(client llm.Client, opts ...Option) *Oracle {
	o := &Oracle{
		client:   client,
		tier:     llm.TierStandard,
		resolver: skills.Default,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type experienceDetail struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
	Description string `json:"description"`
}

type response struct {
	Name             *string            `json:"name"`
	Email            *string            `json:"email"`
	Phone            *string            `json:"phone"`
	Skills           []string           `json:"skills"`
	Education        []string           `json:"education"`
	ExperienceYears  float64            `json:"experience_years"`
	Summary          *string            `json:"summary"`
	Certifications   []string           `json:"certifications"`
	ExperienceDetail []experienceDetail `json:"experience_detail"`
}

// ParseProfile sends text to the model and converts its answer into a profile.
// Any transport, schema or decoding failure is returned as an error so the
// caller can fall back to rule-based parsing.
func (o *Oracle) ParseProfile(ctx context.Context, text string) (*types.CandidateProfile, error) {
	prompt, err := prompts.Render(prompts.OracleFile, prompts.ParseResumeKey, map[string]string{
		"OutputFormat": llm.DescribeFields(llm.ResumeProfileSchema()),
		"ResumeText":   text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build oracle prompt: %w", err)
	}

	o.logger.Debug("oracle request",
		zap.String("model", o.client.GetModel(o.tier)),
		zap.Int("prompt_length", len(prompt)))

	raw, err := o.client.GenerateJSON(ctx, prompt, o.tier)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	cleaned := llm.CleanJSONBlock(raw)

	o.logger.Debug("oracle response", zap.String("response", logger.Truncate(cleaned, responseLogLimit)))

	if err := schemas.ValidateBytes(schemas.OracleProfile, []byte(cleaned)); err != nil {
		return nil, fmt.Errorf("oracle response rejected: %w", err)
	}

	var resp response
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode oracle response: %w", err)
	}

	return o.toProfile(&resp, text), nil
}

func (o *Oracle) toProfile(resp *response, text string) *types.CandidateProfile {
	profile := &types.CandidateProfile{
		Name:             trimmedPtr(resp.Name),
		Email:            trimmedPtr(resp.Email),
		Phone:            trimmedPtr(resp.Phone),
		Skills:           o.resolver.CanonicalizeAll(resp.Skills),
		Education:        NormalizeEducation(resp.Education),
		ExperienceYears:  max(int(math.Round(resp.ExperienceYears)), 0),
		RawText:          text,
		SectionsDetected: []string{},
		ParserVersion:    types.ParserVersionOracle,
		Summary:          strings.TrimSpace(types.StringValue(resp.Summary)),
		Certifications:   nonEmpty(resp.Certifications),
	}

	for _, d := range resp.ExperienceDetail {
		if strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Company) == "" {
			continue
		}
		profile.ExperienceDetail = append(profile.ExperienceDetail, types.ExperienceDetail{
			Title:       strings.TrimSpace(d.Title),
			Company:     strings.TrimSpace(d.Company),
			StartYear:   d.StartYear,
			EndYear:     d.EndYear,
			Description: strings.TrimSpace(d.Description),
		})
	}
	return profile
}

// NormalizeDegree maps a free-form degree string to a level. Strings naming
// no recognized level report false.
func NormalizeDegree(degree string) (types.EducationLevel, bool) {
	level := types.ParseEducationLevel(degree)
	return level, level != types.EducationNone
}

// NormalizeEducation maps degree strings to distinct levels, highest first.
func NormalizeEducation(degrees []string) []types.EducationLevel {
	seen := make(map[types.EducationLevel]bool)
	levels := []types.EducationLevel{}
	for _, d := range degrees {
		level, ok := NormalizeDegree(d)
		if !ok || seen[level] {
			continue
		}
		seen[level] = true
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] > levels[j] })
	return levels
}

func trimmedPtr(s *string) *string {
	return types.StringPtr(strings.TrimSpace(types.StringValue(s)))
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
