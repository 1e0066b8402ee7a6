package types

import (
	"time"

	"github.com/google/uuid"
)

// Interview session statuses.
const (
	SessionStatusPending    = "pending"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	SessionStatusExpired    = "expired"
)

// ScreeningJob is one job posting being screened against.
type ScreeningJob struct {
	ID                 uuid.UUID    `json:"id"`
	JobRole            string       `json:"job_role"`
	RequiredExperience string       `json:"required_experience"`
	Description        string       `json:"description"`
	Analysis           *JobAnalysis `json:"analysis,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

// InterviewSetup binds evaluation criteria to a (role type, level) pair for a
// job. At most one setup per pair is active at a time.
type InterviewSetup struct {
	ID        uuid.UUID          `json:"id"`
	JobID     uuid.UUID          `json:"job_post_id"`
	RoleType  string             `json:"role_type"` // tech, non-tech, semi-tech
	Level     string             `json:"level"`     // entry, mid, senior
	Criteria  EvaluationCriteria `json:"criteria"`
	IsActive  bool               `json:"is_active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// InterviewSession is one candidate's interview: the generated questions, the
// conductor prompt, and (after completion) the transcript and analysis.
type InterviewSession struct {
	ID             uuid.UUID `json:"id"`
	ResumeResultID uuid.UUID `json:"resume_result_id"`
	JobID          uuid.UUID `json:"job_post_id"`
	CandidateName  string    `json:"candidate_name"`
	JobRole        string    `json:"job_role"`

	// Adaptive mode persists a multi-tier pool; standardized mode a flat set.
	Pool        QuestionPool    `json:"question_pool,omitempty"`
	Adaptive    *AdaptiveConfig `json:"adaptive_config,omitempty"`
	QuestionSet *QuestionSet    `json:"question_set,omitempty"`

	InterviewPrompt string `json:"interview_prompt"`
	SessionURL      string `json:"session_url"`
	Status          string `json:"status"`

	Transcript string             `json:"transcript,omitempty"`
	Analysis   *InterviewAnalysis `json:"analysis,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProcessingStatus tracks batch screening progress for a job.
type ProcessingStatus struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
}
