package parsing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-ats/internal/types"
)

func TestParse_InsufficientData(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"short", "too short"},
		{"padded short", "   nineteen chars!!       \n\n"},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := p.Parse(context.Background(), tt.text, ParseOptions{})
			require.NotNil(t, profile)
			assert.Equal(t, types.ErrInsufficientData, profile.Error)
			assert.Equal(t, tt.text, profile.RawText)
			assert.True(t, profile.HasError())
		})
	}
}

func TestParse_ExactlyMinLength(t *testing.T) {
	p := NewParser()
	profile := p.Parse(context.Background(), "  12345678901234567890  ", ParseOptions{})
	assert.Empty(t, profile.Error)
	assert.Equal(t, types.ParserVersionRules, profile.ParserVersion)
}

func TestParse_RuleBased(t *testing.T) {
	p := NewParser(WithClock(fixedClock(2026)))
	profile := p.Parse(context.Background(), sampleResume, ParseOptions{})

	require.NotNil(t, profile)
	assert.Empty(t, profile.Error)
	assert.Equal(t, "Jane Doe", types.StringValue(profile.Name))
	assert.Equal(t, "jane.doe@example.com", types.StringValue(profile.Email))
	assert.Equal(t, "+1 555-123-4567", types.StringValue(profile.Phone))
	assert.ElementsMatch(t,
		[]string{"typescript", "python", "go", "node.js", "postgresql", "redis", "docker", "kubernetes"},
		profile.Skills)
	assert.Equal(t, []types.EducationLevel{types.EducationBachelors}, profile.Education)
	assert.Equal(t, 11, profile.ExperienceYears)
	assert.Equal(t, []string{"education", "experience", "skills", "summary"}, profile.SectionsDetected)
	assert.Equal(t, types.ParserVersionRules, profile.ParserVersion)
	assert.Equal(t, sampleResume, profile.RawText)
}

func TestParse_MissingFieldsAreNil(t *testing.T) {
	p := NewParser()
	profile := p.Parse(context.Background(), "#1 developer with a passion for clean code", ParseOptions{})

	assert.Nil(t, profile.Name)
	assert.Nil(t, profile.Email)
	assert.Nil(t, profile.Phone)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Education)
	assert.NotNil(t, profile.SectionsDetected)
}

func TestParse_Deterministic(t *testing.T) {
	p := NewParser(WithClock(fixedClock(2026)))
	a := p.Parse(context.Background(), sampleResume, ParseOptions{})
	b := p.Parse(context.Background(), sampleResume, ParseOptions{})
	assert.Equal(t, a, b)
}

func TestParse_OracleSuccess(t *testing.T) {
	oracle := OracleFunc(func(_ context.Context, text string) (*types.CandidateProfile, error) {
		return &types.CandidateProfile{
			Name:            types.StringPtr("Jane Doe"),
			Skills:          []string{"ReactJS", "Golang", "react"},
			Education:       []types.EducationLevel{types.EducationMasters},
			ExperienceYears: 8,
			Summary:         "Backend engineer",
		}, nil
	})

	p := NewParser(WithOracle(oracle))
	profile := p.Parse(context.Background(), sampleResume, ParseOptions{UseOracle: true})

	assert.Equal(t, types.ParserVersionOracle, profile.ParserVersion)
	assert.Equal(t, []string{"react", "go"}, profile.Skills)
	assert.Equal(t, 8, profile.ExperienceYears)
	assert.Equal(t, "Backend engineer", profile.Summary)
	assert.Equal(t, sampleResume, profile.RawText)
	assert.NotNil(t, profile.SectionsDetected)
}

func TestParse_OracleFallback(t *testing.T) {
	tests := []struct {
		name   string
		oracle OracleFunc
	}{
		{
			name: "error",
			oracle: func(context.Context, string) (*types.CandidateProfile, error) {
				return nil, errors.New("quota exceeded")
			},
		},
		{
			name: "nil profile",
			oracle: func(context.Context, string) (*types.CandidateProfile, error) {
				return nil, nil
			},
		},
		{
			name: "error profile",
			oracle: func(context.Context, string) (*types.CandidateProfile, error) {
				return types.ErrorProfile("", "could not read"), nil
			},
		},
		{
			name: "invalid profile",
			oracle: func(context.Context, string) (*types.CandidateProfile, error) {
				return &types.CandidateProfile{ExperienceYears: -3}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			p := NewParser(WithOracle(tt.oracle), WithLogger(zap.New(core)), WithClock(fixedClock(2026)))

			profile := p.Parse(context.Background(), sampleResume, ParseOptions{UseOracle: true})

			assert.Empty(t, profile.Error)
			assert.Equal(t, types.ParserVersionRules, profile.ParserVersion)
			assert.Equal(t, 11, profile.ExperienceYears)
			assert.Equal(t, 1, logs.FilterMessageSnippet("falling back").Len())
		})
	}
}

func TestParse_OracleTimeoutFallsBack(t *testing.T) {
	oracle := OracleFunc(func(ctx context.Context, _ string) (*types.CandidateProfile, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	p := NewParser(WithOracle(oracle), WithOracleTimeout(10*time.Millisecond))
	profile := p.Parse(context.Background(), sampleResume, ParseOptions{UseOracle: true})

	assert.Equal(t, types.ParserVersionRules, profile.ParserVersion)
}

func TestParse_OracleNotConsultedUnlessRequested(t *testing.T) {
	var calls atomic.Int32
	oracle := OracleFunc(func(context.Context, string) (*types.CandidateProfile, error) {
		calls.Add(1)
		return &types.CandidateProfile{}, nil
	})

	p := NewParser(WithOracle(oracle))
	p.Parse(context.Background(), sampleResume, ParseOptions{})
	p.Parse(context.Background(), "short", ParseOptions{UseOracle: true})

	assert.Equal(t, int32(0), calls.Load())
}

func TestParse_OracleRequestedWithoutOracle(t *testing.T) {
	p := NewParser()
	profile := p.Parse(context.Background(), sampleResume, ParseOptions{UseOracle: true})
	assert.Equal(t, types.ParserVersionRules, profile.ParserVersion)
}

func TestParseDocument(t *testing.T) {
	p := NewParser(WithClock(fixedClock(2026)))

	profile := p.ParseDocument(context.Background(), "resume.txt", []byte(sampleResume), ParseOptions{})
	assert.Empty(t, profile.Error)
	assert.Equal(t, "Jane Doe", types.StringValue(profile.Name))

	profile = p.ParseDocument(context.Background(), "resume.docx", []byte("PK\x03\x04"), ParseOptions{})
	assert.NotEmpty(t, profile.Error)
	assert.True(t, profile.HasError())

	profile = p.ParseDocument(context.Background(), "resume.txt", []byte("tiny"), ParseOptions{})
	assert.Equal(t, types.ErrInsufficientData, profile.Error)
}

func TestOracleError(t *testing.T) {
	cause := errors.New("boom")
	err := &OracleError{Message: "oracle call failed", Cause: cause}

	assert.Equal(t, "oracle parse failed: oracle call failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "oracle parse failed: empty", (&OracleError{Message: "empty"}).Error())
}
