// Package store persists jobs, interview setups, resume results, and
// interview sessions. Two implementations exist: an in-memory store for tests
// and single-process deployments, and a PostgreSQL store.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/interview-screener/internal/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository is the persistence surface consumed by the HTTP layer. Core
// scoring and generation logic never touches it; all core inputs arrive as
// explicit parameters.
type Repository interface {
	CreateJob(ctx context.Context, job *types.ScreeningJob) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.ScreeningJob, error)
	ListJobs(ctx context.Context) ([]types.ScreeningJob, error)
	UpdateJobAnalysis(ctx context.Context, id uuid.UUID, analysis *types.JobAnalysis) error
	DeleteJob(ctx context.Context, id uuid.UUID) error

	// SaveSetup upserts by (job, role type, level); the newest version of a
	// pair replaces the previous one.
	SaveSetup(ctx context.Context, setup *types.InterviewSetup) error
	GetSetup(ctx context.Context, jobID uuid.UUID, roleType, level string) (*types.InterviewSetup, error)
	ListSetups(ctx context.Context, jobID uuid.UUID) ([]types.InterviewSetup, error)
	DeleteSetup(ctx context.Context, id uuid.UUID) error

	AddResumeResult(ctx context.Context, jobID uuid.UUID, result types.ResumeAnalysisResult) error
	ListResumeResults(ctx context.Context, jobID uuid.UUID, minScore float64) ([]types.ResumeAnalysisResult, error)
	GetResumeResult(ctx context.Context, jobID, resumeID uuid.UUID) (*types.ResumeAnalysisResult, error)

	SetProcessingStatus(ctx context.Context, jobID uuid.UUID, status types.ProcessingStatus) error
	GetProcessingStatus(ctx context.Context, jobID uuid.UUID) (types.ProcessingStatus, error)

	CreateSession(ctx context.Context, session *types.InterviewSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*types.InterviewSession, error)
	UpdateSession(ctx context.Context, session *types.InterviewSession) error
	ListSessionsByJob(ctx context.Context, jobID uuid.UUID) ([]types.InterviewSession, error)

	Close()
}
