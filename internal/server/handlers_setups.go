package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/interview-screener/internal/store"
	"github.com/jonathan/interview-screener/internal/types"
)

// SetupRequest represents the request body for POST /jobs/{id}/setups
type SetupRequest struct {
	RoleType string                   `json:"role_type" validate:"required,oneof=tech non-tech semi-tech"`
	Level    string                   `json:"level" validate:"required,oneof=entry mid senior"`
	Criteria types.EvaluationCriteria `json:"criteria" validate:"required"`
	IsActive *bool                    `json:"is_active,omitempty"`
}

// handleSaveSetup creates or replaces the interview setup for a
// (role type, level) pair. Criteria percentages must sum to exactly 100 here;
// the distributor itself accepts any weighting.
func (s *Server) handleSaveSetup(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	sum := req.Criteria.ScreeningPercentage +
		req.Criteria.DomainPercentage +
		req.Criteria.BehavioralPercentage +
		req.Criteria.CommunicationPercentage
	if sum != 100 {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Criteria percentages must sum to 100, got %d", sum))
		return
	}

	if _, err := s.repo.GetJob(r.Context(), jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Job not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job: "+err.Error())
		return
	}

	setup := &types.InterviewSetup{
		JobID:    jobID,
		RoleType: req.RoleType,
		Level:    req.Level,
		Criteria: req.Criteria,
		IsActive: true,
	}
	if req.IsActive != nil {
		setup.IsActive = *req.IsActive
	}

	if err := s.repo.SaveSetup(r.Context(), setup); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save setup: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, setup)
}

// handleListSetups returns all setups for a job.
func (s *Server) handleListSetups(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	setups, err := s.repo.ListSetups(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list setups: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"setups": setups,
		"count":  len(setups),
	})
}

// handleDeleteSetup deletes one setup by ID.
func (s *Server) handleDeleteSetup(w http.ResponseWriter, r *http.Request) {
	setupID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.repo.DeleteSetup(r.Context(), setupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Setup not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete setup: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
