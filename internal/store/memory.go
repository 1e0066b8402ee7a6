package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-screener/internal/types"
)

// Memory is an in-process Repository. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	jobs     map[uuid.UUID]types.ScreeningJob
	setups   map[uuid.UUID]types.InterviewSetup
	results  map[uuid.UUID][]types.ResumeAnalysisResult // keyed by job ID
	statuses map[uuid.UUID]types.ProcessingStatus
	sessions map[uuid.UUID]types.InterviewSession
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		jobs:     make(map[uuid.UUID]types.ScreeningJob),
		setups:   make(map[uuid.UUID]types.InterviewSetup),
		results:  make(map[uuid.UUID][]types.ResumeAnalysisResult),
		statuses: make(map[uuid.UUID]types.ProcessingStatus),
		sessions: make(map[uuid.UUID]types.InterviewSession),
	}
}

func (m *Memory) CreateJob(_ context.Context, job *types.ScreeningJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	m.jobs[job.ID] = *job
	return nil
}

func (m *Memory) GetJob(_ context.Context, id uuid.UUID) (*types.ScreeningJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (m *Memory) ListJobs(_ context.Context) ([]types.ScreeningJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := make([]types.ScreeningJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
	return jobs, nil
}

func (m *Memory) UpdateJobAnalysis(_ context.Context, id uuid.UUID, analysis *types.JobAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.Analysis = analysis
	m.jobs[id] = job
	return nil
}

func (m *Memory) DeleteJob(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	delete(m.results, id)
	delete(m.statuses, id)
	for sid, setup := range m.setups {
		if setup.JobID == id {
			delete(m.setups, sid)
		}
	}
	for sid, session := range m.sessions {
		if session.JobID == id {
			delete(m.sessions, sid)
		}
	}
	return nil
}

func (m *Memory) SaveSetup(_ context.Context, setup *types.InterviewSetup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	// Replace any existing setup for the same (job, role type, level) pair.
	for sid, existing := range m.setups {
		if existing.JobID == setup.JobID && existing.RoleType == setup.RoleType && existing.Level == setup.Level {
			setup.ID = existing.ID
			setup.CreatedAt = existing.CreatedAt
			delete(m.setups, sid)
		}
	}
	if setup.ID == uuid.Nil {
		setup.ID = uuid.New()
	}
	if setup.CreatedAt.IsZero() {
		setup.CreatedAt = now
	}
	setup.UpdatedAt = now
	m.setups[setup.ID] = *setup
	return nil
}

func (m *Memory) GetSetup(_ context.Context, jobID uuid.UUID, roleType, level string) (*types.InterviewSetup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, setup := range m.setups {
		if setup.JobID == jobID && setup.RoleType == roleType && setup.Level == level {
			s := setup
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListSetups(_ context.Context, jobID uuid.UUID) ([]types.InterviewSetup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var setups []types.InterviewSetup
	for _, setup := range m.setups {
		if setup.JobID == jobID {
			setups = append(setups, setup)
		}
	}
	sort.Slice(setups, func(i, j int) bool { return setups[i].CreatedAt.Before(setups[j].CreatedAt) })
	return setups, nil
}

func (m *Memory) DeleteSetup(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.setups[id]; !ok {
		return ErrNotFound
	}
	delete(m.setups, id)
	return nil
}

func (m *Memory) AddResumeResult(_ context.Context, jobID uuid.UUID, result types.ResumeAnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[jobID] = append(m.results[jobID], result)
	return nil
}

func (m *Memory) ListResumeResults(_ context.Context, jobID uuid.UUID, minScore float64) ([]types.ResumeAnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var results []types.ResumeAnalysisResult
	for _, r := range m.results[jobID] {
		if r.Fit.FitScore >= minScore {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Fit.FitScore > results[j].Fit.FitScore })
	return results, nil
}

func (m *Memory) GetResumeResult(_ context.Context, jobID, resumeID uuid.UUID) (*types.ResumeAnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.results[jobID] {
		if r.ResumeID == resumeID {
			res := r
			return &res, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SetProcessingStatus(_ context.Context, jobID uuid.UUID, status types.ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[jobID] = status
	return nil
}

func (m *Memory) GetProcessingStatus(_ context.Context, jobID uuid.UUID) (types.ProcessingStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statuses[jobID], nil
}

func (m *Memory) CreateSession(_ context.Context, session *types.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	m.sessions[session.ID] = *session
	return nil
}

func (m *Memory) GetSession(_ context.Context, id uuid.UUID) (*types.InterviewSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (m *Memory) UpdateSession(_ context.Context, session *types.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		return ErrNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	m.sessions[session.ID] = *session
	return nil
}

func (m *Memory) ListSessionsByJob(_ context.Context, jobID uuid.UUID) ([]types.InterviewSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sessions []types.InterviewSession
	for _, s := range m.sessions {
		if s.JobID == jobID {
			sessions = append(sessions, s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.Before(sessions[j].CreatedAt) })
	return sessions, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}
