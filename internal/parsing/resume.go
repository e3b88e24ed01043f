// Package parsing turns raw resume text into a structured candidate profile
// using section splitting and rule-based field extraction, with an optional
// external oracle tried first.
package parsing

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/skills"
	"github.com/jonathan/resume-ats/internal/types"
)

// MinTextLength is the minimum trimmed length, in characters, of a parseable resume.
const MinTextLength = 20

// DefaultOracleTimeout bounds a single oracle call.
const DefaultOracleTimeout = 30 * time.Second

// ParseOptions control a single parse.
type ParseOptions struct {
	UseOracle bool
}

// Parser is safe for concurrent use.
type Parser struct {
	resolver      *skills.Resolver
	oracle        Oracle
	oracleTimeout time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithOracle sets the external oracle consulted when ParseOptions.UseOracle is true.
func WithOracle(o Oracle) Option {
	return func(p *Parser) { p.oracle = o }
}

// WithOracleTimeout overrides DefaultOracleTimeout. Non-positive values are ignored.
func WithOracleTimeout(d time.Duration) Option {
	return func(p *Parser) {
		if d > 0 {
			p.oracleTimeout = d
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the time source used to resolve "present" in date ranges.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithResolver replaces the default skill resolver.
func WithResolver(r *skills.Resolver) Option {
	return func(p *Parser) {
		if r != nil {
			p.resolver = r
		}
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		resolver:      skills.Default,
		oracleTimeout: DefaultOracleTimeout,
		logger:        zap.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds a candidate profile from raw resume text. It never returns nil.
// Text shorter than MinTextLength yields an insufficient-data profile; oracle
// failures fall back to the rule-based pipeline.
func (p *Parser) Parse(ctx context.Context, rawText string, opts ParseOptions) *types.CandidateProfile {
	if utf8.RuneCountInString(strings.TrimSpace(rawText)) < MinTextLength {
		p.logger.Info("insufficient resume text", zap.Int("length", len(rawText)))
		return types.InsufficientProfile(rawText)
	}

	p.logger.Debug("parsing resume", zap.Int("length", len(rawText)), zap.Bool("use_oracle", opts.UseOracle))

	if opts.UseOracle {
		if p.oracle == nil {
			p.logger.Debug("oracle requested but not configured")
		} else {
			profile, err := p.parseWithOracle(ctx, rawText)
			if err == nil {
				p.logParsed(profile)
				return profile
			}
			p.logger.Warn("oracle parse failed, falling back to rules", zap.Error(err))
		}
	}

	profile := p.parseRules(rawText)
	p.logParsed(profile)
	return profile
}

// ParseDocument extracts text from a document and parses it. Decode failures
// are reported as an error profile.
func (p *Parser) ParseDocument(ctx context.Context, name string, data []byte, opts ParseOptions) *types.CandidateProfile {
	text, err := ingestion.ExtractText(name, data)
	if err != nil {
		p.logger.Warn("text extraction failed", zap.String("document", name), zap.Error(err))
		return types.ErrorProfile("", err.Error())
	}
	return p.Parse(ctx, text, opts)
}

func (p *Parser) parseWithOracle(ctx context.Context, rawText string) (*types.CandidateProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.oracleTimeout)
	defer cancel()

	profile, err := p.oracle.ParseProfile(ctx, rawText)
	if err != nil {
		return nil, &OracleError{Message: "oracle call failed", Cause: err}
	}
	if profile == nil {
		return nil, &OracleError{Message: "oracle returned no profile"}
	}
	if profile.HasError() {
		return nil, &OracleError{Message: "oracle returned an error profile: " + profile.Error}
	}
	if err := profile.Validate(); err != nil {
		return nil, &OracleError{Message: "oracle profile is unusable", Cause: err}
	}

	out := *profile
	out.RawText = rawText
	out.Skills = p.resolver.CanonicalizeAll(profile.Skills)
	if out.Education == nil {
		out.Education = []types.EducationLevel{}
	}
	if out.SectionsDetected == nil {
		out.SectionsDetected = []string{}
	}
	if out.ParserVersion == "" {
		out.ParserVersion = types.ParserVersionOracle
	}
	return &out, nil
}

func (p *Parser) parseRules(rawText string) *types.CandidateProfile {
	sections := SplitSections(rawText)

	return &types.CandidateProfile{
		Name:             types.StringPtr(ExtractName(sections)),
		Email:            types.StringPtr(ExtractEmail(rawText)),
		Phone:            types.StringPtr(ExtractPhone(rawText)),
		Skills:           ExtractSkills(p.resolver, sections),
		Education:        ExtractEducation(sections),
		ExperienceYears:  ExtractExperienceYears(sections, p.now().Year()),
		RawText:          rawText,
		SectionsDetected: sections.Detected(),
		ParserVersion:    types.ParserVersionRules,
	}
}

func (p *Parser) logParsed(profile *types.CandidateProfile) {
	p.logger.Info("resume parsed",
		zap.String("parser_version", profile.ParserVersion),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience_years", profile.ExperienceYears),
		zap.Strings("sections", profile.SectionsDetected),
	)
}
