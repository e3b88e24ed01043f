package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/db"
	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/types"
)

const resumeText = `John Smith
john.smith@example.com

Experience
Backend Engineer 2018 - 2024
Built Node.js and SQL services for a payments company.

Education
B.S. Computer Science
`

type fakeJobs struct {
	records map[uuid.UUID]*db.JobRecord
	calls   int
}

func (f *fakeJobs) GetJobRequirement(_ context.Context, id uuid.UUID) (*db.JobRecord, error) {
	f.calls++
	rec, ok := f.records[id]
	if !ok {
		return nil, &db.NotFoundError{ID: id}
	}
	return rec, nil
}

func backendJob() types.JobRequirement {
	return types.JobRequirement{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Node.js", "SQL"},
		MinExperience:  3,
		EducationLevel: "bachelors",
	}
}

func newTestServer(t *testing.T, jobs JobStore) *Server {
	t.Helper()
	s := New(Config{Port: 0, RateLimit: 100, Burst: 50}, parsing.NewParser(), jobs, nil)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestParse(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/parse", map[string]any{"text": resumeText})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	profile := decodeBody[types.CandidateProfile](t, rec)
	assert.Equal(t, types.ParserVersionRules, profile.ParserVersion)
	assert.Equal(t, "john.smith@example.com", types.StringValue(profile.Email))
	assert.Contains(t, profile.Skills, "node.js")
	assert.Contains(t, profile.Education, types.EducationBachelors)
	assert.Empty(t, profile.Error)
	assert.Equal(t, "50", rec.Header().Get("X-RateLimit-Limit"))
}

func TestParse_ShortTextIsInsufficient(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/parse", map[string]any{"text": "too short"})
	require.Equal(t, http.StatusOK, rec.Code)

	profile := decodeBody[types.CandidateProfile](t, rec)
	assert.Equal(t, types.ErrInsufficientData, profile.Error)
}

func TestParse_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "empty text", body: map[string]any{"text": ""}, want: "Text failed required"},
		{name: "malformed json", body: `{"text": `, want: "invalid JSON"},
		{name: "empty body", body: nil, want: "request body is empty"},
		{name: "unknown field", body: `{"text":"x","resume":"y"}`, want: "unknown field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			rec := do(t, s, http.MethodPost, "/parse", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody[map[string]string](t, rec)["error"], tt.want)
		})
	}
}

func TestScore(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/score", map[string]any{
		"profile": map[string]any{
			"skills":           []string{"node.js", "postgresql"},
			"education":        []string{"bachelors"},
			"experience_years": 3,
			"raw_text":         "Backend Engineer building node.js services",
			"parser_version":   types.ParserVersionRules,
		},
		"job": backendJob(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeBody[types.ScoreBreakdown](t, rec)
	assert.True(t, result.SufficientData)
	assert.InDelta(t, 77.75, result.TotalScore, 1e-9)
	assert.Equal(t, 100.0, result.MaxScore)
	require.NotNil(t, result.Breakdown.Skills)
	assert.Equal(t, []string{"sql"}, result.Breakdown.Skills.Required.PartialSkills)
}

func TestScore_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			name: "missing job",
			body: map[string]any{"profile": map[string]any{"skills": []string{"go"}}},
			want: "Job failed required",
		},
		{
			name: "missing profile",
			body: map[string]any{"job": backendJob()},
			want: "Profile failed required",
		},
		{
			name: "negative experience",
			body: map[string]any{
				"profile": map[string]any{"experience_years": 1},
				"job":     map[string]any{"title": "x", "min_experience": -1},
			},
			want: "Job.MinExperience failed gte=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			rec := do(t, s, http.MethodPost, "/score", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody[map[string]string](t, rec)["error"], tt.want)
		})
	}
}

func TestEvaluate_InlineJob(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/evaluate", map[string]any{"text": resumeText, "job": backendJob()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[evaluateResponse](t, rec)
	require.NotNil(t, resp.Profile)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "John Smith", types.StringValue(resp.Profile.Name))
	assert.True(t, resp.Result.SufficientData)
	assert.Greater(t, resp.Result.TotalScore, 50.0)
	assert.Equal(t, "25", rec.Header().Get("X-RateLimit-Limit"))
}

func TestEvaluate_ShortTextScoresZero(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/evaluate", map[string]any{"text": "hi", "job": backendJob()})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[evaluateResponse](t, rec)
	assert.False(t, resp.Result.SufficientData)
	assert.Equal(t, 0.0, resp.Result.TotalScore)
	assert.Equal(t, []string{types.ErrInsufficientData}, resp.Result.Explanation)
}

func TestEvaluate_JobID(t *testing.T) {
	id := uuid.New()
	jobs := &fakeJobs{records: map[uuid.UUID]*db.JobRecord{
		id: {ID: id, Status: db.StatusOpen, JobRequirement: backendJob()},
	}}
	s := newTestServer(t, jobs)

	rec := do(t, s, http.MethodPost, "/evaluate", map[string]any{"text": resumeText, "job_id": id.String()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, jobs.calls)

	resp := decodeBody[evaluateResponse](t, rec)
	assert.True(t, resp.Result.SufficientData)
	require.NotNil(t, resp.Result.Breakdown.JobTitleRelevance)
	assert.Equal(t, []string{"backend", "engineer"}, resp.Result.Breakdown.JobTitleRelevance.JobTitleKeywords)
}

func TestEvaluate_Errors(t *testing.T) {
	missing := uuid.New()
	store := &fakeJobs{records: map[uuid.UUID]*db.JobRecord{}}

	tests := []struct {
		name     string
		jobs     JobStore
		body     map[string]any
		wantCode int
		want     string
	}{
		{
			name:     "unknown job id",
			jobs:     store,
			body:     map[string]any{"text": resumeText, "job_id": missing.String()},
			wantCode: http.StatusNotFound,
			want:     "not found",
		},
		{
			name:     "no job store",
			jobs:     nil,
			body:     map[string]any{"text": resumeText, "job_id": missing.String()},
			wantCode: http.StatusServiceUnavailable,
			want:     ErrJobStoreUnavailable.Error(),
		},
		{
			name:     "neither job nor id",
			jobs:     store,
			body:     map[string]any{"text": resumeText},
			wantCode: http.StatusBadRequest,
			want:     "required_without",
		},
		{
			name:     "both job and id",
			jobs:     store,
			body:     map[string]any{"text": resumeText, "job": backendJob(), "job_id": missing.String()},
			wantCode: http.StatusBadRequest,
			want:     "excluded_with",
		},
		{
			name:     "malformed id",
			jobs:     store,
			body:     map[string]any{"text": resumeText, "job_id": "not-a-uuid"},
			wantCode: http.StatusBadRequest,
			want:     "JobID failed uuid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.jobs)
			rec := do(t, s, http.MethodPost, "/evaluate", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, decodeBody[map[string]string](t, rec)["error"], tt.want)
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := New(Config{RateLimit: 0.001, Burst: 2}, parsing.NewParser(), nil, nil)
	t.Cleanup(s.rateLimiter.Stop)

	body := map[string]any{"text": resumeText}
	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodPost, "/parse", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/parse", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "rate limit exceeded", decodeBody[map[string]string](t, rec)["error"])

	// health is never limited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil).Code)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Message: "x"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&db.NotFoundError{ID: uuid.New()}))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrJobStoreUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	s := New(Config{Port: 0, RateLimit: 10, Burst: 10}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Start(ctx))
}
