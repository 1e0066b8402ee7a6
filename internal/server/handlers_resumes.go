package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/batch"
	"github.com/jonathan/interview-screener/internal/store"
	"github.com/jonathan/interview-screener/internal/types"
)

// ResumeUpload is one resume in a batch upload. Text arrives pre-extracted;
// PDF/DOCX parsing happens upstream.
type ResumeUpload struct {
	Filename string `json:"filename" validate:"required"`
	Text     string `json:"text" validate:"required,min=20"`
}

// UploadResumesRequest represents the request body for POST /jobs/{id}/resumes
type UploadResumesRequest struct {
	Resumes []ResumeUpload `json:"resumes" validate:"required,min=1,dive"`
}

// handleUploadResumes accepts a batch of resumes and screens them in the
// background.
func (s *Server) handleUploadResumes(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UploadResumesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if len(req.Resumes) > s.batchSize {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Batch too large: %d resumes exceeds the limit of %d", len(req.Resumes), s.batchSize))
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

	resumes := make([]batch.Resume, len(req.Resumes))
	for i, upload := range req.Resumes {
		resumes[i] = batch.Resume{
			ID:       uuid.New(),
			Filename: upload.Filename,
			Text:     upload.Text,
		}
	}

	if err := s.repo.SetProcessingStatus(r.Context(), jobID, types.ProcessingStatus{Total: len(resumes)}); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to record processing status: "+err.Error())
		return
	}

	go s.screenBatch(job, resumes)

	s.jsonResponse(w, http.StatusAccepted, map[string]any{
		"status": "processing",
		"total":  len(resumes),
	})
}

// screenBatch runs the batch pipeline and persists every result. Detached from
// the request; progress is visible via GET /jobs/{id}/status.
func (s *Server) screenBatch(job *types.ScreeningJob, resumes []batch.Resume) {
	ctx := context.Background()

	jobAnalysis := types.FallbackJobAnalysis(job.RequiredExperience)
	if job.Analysis != nil {
		jobAnalysis = *job.Analysis
	}

	results, failed := s.processor.ProcessBatch(ctx, resumes, jobAnalysis, job.Description)

	stored := 0
	for _, result := range results {
		if err := s.repo.AddResumeResult(ctx, job.ID, result); err != nil {
			s.logger.Error("failed to store resume result",
				zap.String("job_id", job.ID.String()),
				zap.String("resume_id", result.ResumeID.String()),
				zap.Error(err))
			continue
		}
		stored++
	}

	if err := s.repo.SetProcessingStatus(ctx, job.ID, types.ProcessingStatus{
		Total:     len(resumes),
		Processed: stored,
	}); err != nil {
		s.logger.Error("failed to update processing status",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("batch screening finished",
		zap.String("job_id", job.ID.String()),
		zap.Int("total", len(resumes)),
		zap.Int("failed", failed))
}

// handleProcessingStatus reports batch progress for a job.
func (s *Server) handleProcessingStatus(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	status, err := s.repo.GetProcessingStatus(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get status: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// handleListResults returns screened resumes for a job, best fit first. The
// min_score query parameter filters out weaker candidates.
func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	minScore := 0.0
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid min_score")
			return
		}
		minScore = parsed
	}

	results, err := s.repo.ListResumeResults(r.Context(), jobID, minScore)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list results: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// handleGetResult returns one screened resume.
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	resumeID, ok := s.pathUUID(w, r, "resume_id")
	if !ok {
		return
	}

	result, err := s.repo.GetResumeResult(r.Context(), jobID, resumeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Resume result not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get result: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
