package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/analysis"
	"github.com/jonathan/interview-screener/internal/store"
	"github.com/jonathan/interview-screener/internal/types"
)

// CreateJobRequest represents the request body for POST /jobs
type CreateJobRequest struct {
	JobRole            string `json:"job_role" validate:"required,min=2,max=200"`
	RequiredExperience string `json:"required_experience" validate:"max=200"`
	Description        string `json:"description" validate:"required,min=10"`
}

// handleCreateJob stores a job posting and analyzes its description in the
// background.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	job := &types.ScreeningJob{
		JobRole:            req.JobRole,
		RequiredExperience: req.RequiredExperience,
		Description:        analysis.CleanDescription(req.Description),
	}
	if err := s.repo.CreateJob(r.Context(), job); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job: "+err.Error())
		return
	}

	// Description analysis runs in the background; until it lands, consumers
	// of the job see a nil analysis and fall back.
	go s.analyzeJob(job.ID, job.JobRole, job.RequiredExperience, job.Description)

	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) analyzeJob(jobID uuid.UUID, jobRole, requiredExperience, description string) {
	ctx := context.Background()
	jobAnalysis := s.jobs.Analyze(ctx, jobRole, requiredExperience, description)
	if err := s.repo.UpdateJobAnalysis(ctx, jobID, &jobAnalysis); err != nil {
		s.logger.Error("failed to store job analysis",
			zap.String("job_id", jobID.String()),
			zap.Error(err))
	}
}

// handleListJobs returns all jobs, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.repo.ListJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleGetJob returns one job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.repo.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Job not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob deletes a job and everything screened under it.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.repo.DeleteJob(r.Context(), jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Job not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete job: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// pathUUID parses a UUID path value, writing a 400 response on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		s.errorResponse(w, http.StatusBadRequest, name+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
