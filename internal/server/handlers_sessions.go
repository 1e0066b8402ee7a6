package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/questions"
	"github.com/jonathan/interview-screener/internal/store"
	"github.com/jonathan/interview-screener/internal/types"
)

// InterviewLinkRequest represents the optional request body for
// POST /jobs/{id}/results/{resume_id}/interview-link
type InterviewLinkRequest struct {
	// Mode selects pool generation: "adaptive" (default) or "standardized".
	Mode string `json:"mode,omitempty" validate:"omitempty,oneof=adaptive standardized"`
}

// InterviewLinkResponse represents the response for the interview link endpoint.
type InterviewLinkResponse struct {
	SessionID         uuid.UUID        `json:"session_id"`
	InterviewURL      string           `json:"interview_url"`
	InitialDifficulty types.Difficulty `json:"initial_difficulty"`
	TotalQuestions    int              `json:"total_questions"`
	ExpiresAt         time.Time        `json:"expires_at"`
}

// handleGenerateInterviewLink generates questions for a screened candidate and
// returns a tokenized interview URL. Question generation happens here, once;
// the live interview conductor only consumes the stored pool.
func (s *Server) handleGenerateInterviewLink(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	resumeID, ok := s.pathUUID(w, r, "resume_id")
	if !ok {
		return
	}

	var req InterviewLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
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

	result, err := s.repo.GetResumeResult(r.Context(), jobID, resumeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Resume result not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get result: "+err.Error())
		return
	}

	setup, err := s.repo.GetSetup(r.Context(), jobID, result.Classification.Category, result.Classification.Level)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, fmt.Sprintf(
				"No interview setup for %s %s candidates; create one first",
				result.Classification.Level, result.Classification.Category))
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get setup: "+err.Error())
		return
	}
	if !setup.IsActive {
		s.errorResponse(w, http.StatusConflict, "Interview setup is inactive")
		return
	}

	jobAnalysis := types.FallbackJobAnalysis(job.RequiredExperience)
	if job.Analysis != nil {
		jobAnalysis = *job.Analysis
	}

	fitScore := int(math.Round(result.Fit.FitScore))
	initialDifficulty := questions.SelectInitialDifficulty(fitScore)

	session := &types.InterviewSession{
		ID:             uuid.New(),
		ResumeResultID: resumeID,
		JobID:          jobID,
		CandidateName:  result.CandidateName,
		JobRole:        job.JobRole,
		Status:         types.SessionStatusPending,
		ExpiresAt:      time.Now().UTC().Add(s.sessionTTL),
	}

	if req.Mode == "standardized" {
		set := s.generator.GenerateStandardized(r.Context(), questions.StandardizedRequest{
			JobAnalysis:    jobAnalysis,
			Criteria:       setup.Criteria,
			CandidateType:  setup.RoleType,
			CandidateLevel: setup.Level,
		})
		session.QuestionSet = &set
		session.InterviewPrompt = questions.BuildInterviewPrompt(set, result.CandidateName, job.JobRole)
	} else {
		pool, adaptiveCfg, err := s.generator.GeneratePool(r.Context(), questions.PoolRequest{
			JobAnalysis:       jobAnalysis,
			ResumeAnalysis:    result.Fit,
			Criteria:          setup.Criteria,
			CandidateType:     setup.RoleType,
			CandidateLevel:    setup.Level,
			InitialDifficulty: initialDifficulty,
		})
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Question generation failed: "+err.Error())
			return
		}
		session.Pool = pool
		session.Adaptive = &adaptiveCfg
		session.InterviewPrompt = questions.BuildAdaptivePrompt(pool, adaptiveCfg, result.CandidateName, job.JobRole)
	}

	token, err := s.tokens.GenerateToken(session.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to sign interview token: "+err.Error())
		return
	}
	session.SessionURL = fmt.Sprintf("%s/interview?token=%s", s.baseURL, token)

	if err := s.repo.CreateSession(r.Context(), session); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create session: "+err.Error())
		return
	}

	total := session.Pool.TotalQuestions()
	if session.QuestionSet != nil {
		total = session.QuestionSet.TotalQuestions
	}

	s.logger.Info("interview link generated",
		zap.String("session_id", session.ID.String()),
		zap.String("candidate", session.CandidateName),
		zap.String("initial_difficulty", string(initialDifficulty)),
		zap.Int("fit_score", fitScore))

	s.jsonResponse(w, http.StatusCreated, InterviewLinkResponse{
		SessionID:         session.ID,
		InterviewURL:      session.SessionURL,
		InitialDifficulty: initialDifficulty,
		TotalQuestions:    total,
		ExpiresAt:         session.ExpiresAt,
	})
}

// handleGetSession returns a session with its questions, prompt, and (when
// present) transcript and analysis.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.repo.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get session: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

// handleListSessions returns all sessions under a job.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	sessions, err := s.repo.ListSessionsByJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list sessions: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// handleRescoreSession re-runs scoring over a stored transcript.
func (s *Server) handleRescoreSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.repo.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get session: "+err.Error())
		return
	}
	if session.Transcript == "" {
		s.errorResponse(w, http.StatusConflict, "Session has no transcript to score")
		return
	}

	interviewAnalysis, err := s.scoreSession(r, session)
	if err != nil {
		// Transport failures and mangled rubric responses are both upstream
		// problems, not caller errors.
		s.errorResponse(w, http.StatusBadGateway, "Scoring failed: "+err.Error())
		return
	}

	session.Analysis = interviewAnalysis
	if err := s.repo.UpdateSession(r.Context(), session); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store analysis: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, interviewAnalysis)
}

func (s *Server) scoreSession(r *http.Request, session *types.InterviewSession) (*types.InterviewAnalysis, error) {
	known := session.Pool.Flatten()
	if session.QuestionSet != nil {
		known = session.QuestionSet.Questions
	}
	return s.scorer.Score(r.Context(), session.Transcript, session.CandidateName, session.JobRole, known)
}
