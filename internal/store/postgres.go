package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/interview-screener/internal/types"
)

// Postgres is the PostgreSQL-backed Repository. Structured payloads (analysis
// objects, question pools) are stored as JSONB.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) CreateJob(ctx context.Context, job *types.ScreeningJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	analysisJSON, err := marshalNullable(job.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal job analysis: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO screening_jobs (id, job_role, required_experience, description, analysis, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		job.ID, job.JobRole, job.RequiredExperience, job.Description, analysisJSON, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (p *Postgres) GetJob(ctx context.Context, id uuid.UUID) (*types.ScreeningJob, error) {
	var job types.ScreeningJob
	var analysisJSON []byte
	err := p.pool.QueryRow(ctx,
		`SELECT id, job_role, required_experience, description, analysis, created_at
		 FROM screening_jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.JobRole, &job.RequiredExperience, &job.Description, &analysisJSON, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if len(analysisJSON) > 0 {
		job.Analysis = &types.JobAnalysis{}
		if err := json.Unmarshal(analysisJSON, job.Analysis); err != nil {
			return nil, fmt.Errorf("failed to decode job analysis: %w", err)
		}
	}
	return &job, nil
}

func (p *Postgres) ListJobs(ctx context.Context) ([]types.ScreeningJob, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, job_role, required_experience, description, analysis, created_at
		 FROM screening_jobs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.ScreeningJob
	for rows.Next() {
		var job types.ScreeningJob
		var analysisJSON []byte
		if err := rows.Scan(&job.ID, &job.JobRole, &job.RequiredExperience, &job.Description, &analysisJSON, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if len(analysisJSON) > 0 {
			job.Analysis = &types.JobAnalysis{}
			if err := json.Unmarshal(analysisJSON, job.Analysis); err != nil {
				return nil, fmt.Errorf("failed to decode job analysis: %w", err)
			}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (p *Postgres) UpdateJobAnalysis(ctx context.Context, id uuid.UUID, analysis *types.JobAnalysis) error {
	analysisJSON, err := marshalNullable(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal job analysis: %w", err)
	}
	result, err := p.pool.Exec(ctx,
		`UPDATE screening_jobs SET analysis = $1 WHERE id = $2`,
		analysisJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM screening_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) SaveSetup(ctx context.Context, setup *types.InterviewSetup) error {
	if setup.ID == uuid.Nil {
		setup.ID = uuid.New()
	}
	now := time.Now().UTC()
	if setup.CreatedAt.IsZero() {
		setup.CreatedAt = now
	}
	setup.UpdatedAt = now

	criteriaJSON, err := json.Marshal(setup.Criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO interview_setups (id, job_id, role_type, level, criteria, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (job_id, role_type, level)
		 DO UPDATE SET criteria = $5, is_active = $6, updated_at = $8`,
		setup.ID, setup.JobID, setup.RoleType, setup.Level, criteriaJSON, setup.IsActive, setup.CreatedAt, setup.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save setup: %w", err)
	}
	return nil
}

func (p *Postgres) GetSetup(ctx context.Context, jobID uuid.UUID, roleType, level string) (*types.InterviewSetup, error) {
	var setup types.InterviewSetup
	var criteriaJSON []byte
	err := p.pool.QueryRow(ctx,
		`SELECT id, job_id, role_type, level, criteria, is_active, created_at, updated_at
		 FROM interview_setups WHERE job_id = $1 AND role_type = $2 AND level = $3`,
		jobID, roleType, level,
	).Scan(&setup.ID, &setup.JobID, &setup.RoleType, &setup.Level, &criteriaJSON, &setup.IsActive, &setup.CreatedAt, &setup.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setup: %w", err)
	}
	if err := json.Unmarshal(criteriaJSON, &setup.Criteria); err != nil {
		return nil, fmt.Errorf("failed to decode criteria: %w", err)
	}
	return &setup, nil
}

func (p *Postgres) ListSetups(ctx context.Context, jobID uuid.UUID) ([]types.InterviewSetup, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, job_id, role_type, level, criteria, is_active, created_at, updated_at
		 FROM interview_setups WHERE job_id = $1 ORDER BY created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list setups: %w", err)
	}
	defer rows.Close()

	var setups []types.InterviewSetup
	for rows.Next() {
		var setup types.InterviewSetup
		var criteriaJSON []byte
		if err := rows.Scan(&setup.ID, &setup.JobID, &setup.RoleType, &setup.Level, &criteriaJSON, &setup.IsActive, &setup.CreatedAt, &setup.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setup: %w", err)
		}
		if err := json.Unmarshal(criteriaJSON, &setup.Criteria); err != nil {
			return nil, fmt.Errorf("failed to decode criteria: %w", err)
		}
		setups = append(setups, setup)
	}
	return setups, nil
}

func (p *Postgres) DeleteSetup(ctx context.Context, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM interview_setups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete setup: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) AddResumeResult(ctx context.Context, jobID uuid.UUID, result types.ResumeAnalysisResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal resume result: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO resume_results (resume_id, job_id, fit_score, content, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (resume_id) DO UPDATE SET fit_score = $3, content = $4`,
		result.ResumeID, jobID, result.Fit.FitScore, resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to add resume result: %w", err)
	}
	return nil
}

func (p *Postgres) ListResumeResults(ctx context.Context, jobID uuid.UUID, minScore float64) ([]types.ResumeAnalysisResult, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT content FROM resume_results
		 WHERE job_id = $1 AND fit_score >= $2 ORDER BY fit_score DESC`,
		jobID, minScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume results: %w", err)
	}
	defer rows.Close()

	var results []types.ResumeAnalysisResult
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan resume result: %w", err)
		}
		var result types.ResumeAnalysisResult
		if err := json.Unmarshal(content, &result); err != nil {
			return nil, fmt.Errorf("failed to decode resume result: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (p *Postgres) GetResumeResult(ctx context.Context, jobID, resumeID uuid.UUID) (*types.ResumeAnalysisResult, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM resume_results WHERE job_id = $1 AND resume_id = $2`,
		jobID, resumeID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume result: %w", err)
	}
	var result types.ResumeAnalysisResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to decode resume result: %w", err)
	}
	return &result, nil
}

func (p *Postgres) SetProcessingStatus(ctx context.Context, jobID uuid.UUID, status types.ProcessingStatus) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO processing_statuses (job_id, total, processed)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id) DO UPDATE SET total = $2, processed = $3`,
		jobID, status.Total, status.Processed,
	)
	if err != nil {
		return fmt.Errorf("failed to set processing status: %w", err)
	}
	return nil
}

func (p *Postgres) GetProcessingStatus(ctx context.Context, jobID uuid.UUID) (types.ProcessingStatus, error) {
	var status types.ProcessingStatus
	err := p.pool.QueryRow(ctx,
		`SELECT total, processed FROM processing_statuses WHERE job_id = $1`,
		jobID,
	).Scan(&status.Total, &status.Processed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.ProcessingStatus{}, nil
		}
		return types.ProcessingStatus{}, fmt.Errorf("failed to get processing status: %w", err)
	}
	return status, nil
}

func (p *Postgres) CreateSession(ctx context.Context, session *types.InterviewSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	content, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO interview_sessions (id, job_id, status, content, created_at, updated_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.JobID, session.Status, content, session.CreatedAt, session.UpdatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (p *Postgres) GetSession(ctx context.Context, id uuid.UUID) (*types.InterviewSession, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM interview_sessions WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	var session types.InterviewSession
	if err := json.Unmarshal(content, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (p *Postgres) UpdateSession(ctx context.Context, session *types.InterviewSession) error {
	session.UpdatedAt = time.Now().UTC()

	content, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	result, err := p.pool.Exec(ctx,
		`UPDATE interview_sessions SET status = $1, content = $2, updated_at = $3 WHERE id = $4`,
		session.Status, content, session.UpdatedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListSessionsByJob(ctx context.Context, jobID uuid.UUID) ([]types.InterviewSession, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT content FROM interview_sessions WHERE job_id = $1 ORDER BY created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []types.InterviewSession
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		var session types.InterviewSession
		if err := json.Unmarshal(content, &session); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func marshalNullable(analysis *types.JobAnalysis) ([]byte, error) {
	if analysis == nil {
		return nil, nil
	}
	return json.Marshal(analysis)
}
