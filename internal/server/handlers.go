package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/types"
)

type parseRequest struct {
	Text      string `json:"text" validate:"required"`
	UseOracle bool   `json:"use_oracle"`
}

type scoreRequest struct {
	Profile *types.CandidateProfile `json:"profile" validate:"required"`
	Job     *types.JobRequirement   `json:"job" validate:"required"`
}

type evaluateRequest struct {
	Text      string                `json:"text" validate:"required"`
	UseOracle bool                  `json:"use_oracle"`
	Job       *types.JobRequirement `json:"job" validate:"required_without=JobID,excluded_with=JobID"`
	JobID     string                `json:"job_id" validate:"omitempty,uuid"`
}

type evaluateResponse struct {
	Profile *types.CandidateProfile `json:"profile"`
	Result  *types.ScoreBreakdown   `json:"ats_result"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decode(w, r, &req) {
		return
	}

	profile := s.parser.Parse(r.Context(), req.Text, parsing.ParseOptions{UseOracle: req.UseOracle})
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !s.decode(w, r, &req) {
		return
	}

	result := s.scorer.Score(req.Profile, req.Job)
	s.logScore(r, result)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	job := req.Job
	if req.JobID != "" {
		rec, err := s.lookupJob(r, req.JobID)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		job = rec
	}

	profile := s.parser.Parse(r.Context(), req.Text, parsing.ParseOptions{UseOracle: req.UseOracle})
	result := s.scorer.Score(profile, job)
	s.logScore(r, result)
	s.jsonResponse(w, http.StatusOK, evaluateResponse{Profile: profile, Result: result})
}

func (s *Server) lookupJob(r *http.Request, rawID string) (*types.JobRequirement, error) {
	if s.jobs == nil {
		return nil, ErrJobStoreUnavailable
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, &ErrValidation{Message: "job_id must be a UUID", Cause: err}
	}
	rec, err := s.jobs.GetJobRequirement(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("loading job: %w", err)
	}
	return rec.Requirement(), nil
}

// decode reads and validates a JSON body, writing the error response itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			s.errorResponse(w, http.StatusBadRequest, "request body is empty")
		default:
			s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		}
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		verr := describeValidation(err)
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return false
	}
	return true
}

func (s *Server) logScore(r *http.Request, result *types.ScoreBreakdown) {
	s.logger.Info("scored candidate",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Float64("total_score", result.TotalScore),
		zap.Bool("sufficient_data", result.SufficientData))
}
