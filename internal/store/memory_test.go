package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-screener/internal/types"
)

func balancedCriteria() types.EvaluationCriteria {
	return types.EvaluationCriteria{
		ScreeningPercentage:     25,
		DomainPercentage:        25,
		BehavioralPercentage:    25,
		CommunicationPercentage: 25,
		NumberOfQuestions:       7,
	}
}

func newJob(t *testing.T, m *Memory, role string) *types.ScreeningJob {
	t.Helper()
	job := &types.ScreeningJob{
		JobRole:            role,
		RequiredExperience: "3+ years",
		Description:        "Build things.",
	}
	require.NoError(t, m.CreateJob(context.Background(), job))
	return job
}

func TestMemory_JobLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	job := newJob(t, m, "Backend Engineer")
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	got, err := m.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.JobRole)
	assert.Nil(t, got.Analysis)

	analysis := &types.JobAnalysis{JobCategory: "tech", IndustryDomain: "fintech"}
	require.NoError(t, m.UpdateJobAnalysis(ctx, job.ID, analysis))

	got, err = m.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, "tech", got.Analysis.JobCategory)

	require.NoError(t, m.DeleteJob(ctx, job.ID))
	_, err = m.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_GetJobNotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.GetJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	err = m.UpdateJobAnalysis(context.Background(), uuid.New(), &types.JobAnalysis{})
	assert.ErrorIs(t, err, ErrNotFound)

	err = m.DeleteJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_SetupUpsert(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	job := newJob(t, m, "Data Analyst")

	first := &types.InterviewSetup{
		JobID:    job.ID,
		RoleType: "tech",
		Level:    "mid",
		Criteria: balancedCriteria(),
		IsActive: true,
	}
	require.NoError(t, m.SaveSetup(ctx, first))
	firstID := first.ID
	firstCreated := first.CreatedAt

	// Saving the same (job, role type, level) pair replaces the earlier
	// setup while keeping its identity.
	second := &types.InterviewSetup{
		JobID:    job.ID,
		RoleType: "tech",
		Level:    "mid",
		Criteria: types.EvaluationCriteria{ScreeningPercentage: 100, NumberOfQuestions: 7},
		IsActive: true,
	}
	require.NoError(t, m.SaveSetup(ctx, second))
	assert.Equal(t, firstID, second.ID)
	assert.Equal(t, firstCreated, second.CreatedAt)

	setups, err := m.ListSetups(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, setups, 1)
	assert.Equal(t, 100, setups[0].Criteria.ScreeningPercentage)

	got, err := m.GetSetup(ctx, job.ID, "tech", "mid")
	require.NoError(t, err)
	assert.Equal(t, firstID, got.ID)

	// A different level is a distinct setup.
	senior := &types.InterviewSetup{JobID: job.ID, RoleType: "tech", Level: "senior", Criteria: balancedCriteria()}
	require.NoError(t, m.SaveSetup(ctx, senior))
	setups, err = m.ListSetups(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, setups, 2)

	require.NoError(t, m.DeleteSetup(ctx, senior.ID))
	_, err = m.GetSetup(ctx, job.ID, "tech", "senior")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ResumeResultsMinScoreFilter(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	job := newJob(t, m, "QA Engineer")

	scores := []float64{40, 85, 62, 91}
	ids := make([]uuid.UUID, len(scores))
	for i, score := range scores {
		ids[i] = uuid.New()
		require.NoError(t, m.AddResumeResult(ctx, job.ID, types.ResumeAnalysisResult{
			ResumeID:      ids[i],
			CandidateName: "Candidate",
			Fit:           types.FitAnalysis{FitScore: score},
		}))
	}

	all, err := m.ListResumeResults(ctx, job.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, float64(91), all[0].Fit.FitScore)
	assert.Equal(t, float64(40), all[3].Fit.FitScore)

	strong, err := m.ListResumeResults(ctx, job.ID, 60)
	require.NoError(t, err)
	require.Len(t, strong, 3)
	for _, r := range strong {
		assert.GreaterOrEqual(t, r.Fit.FitScore, float64(60))
	}

	got, err := m.GetResumeResult(ctx, job.ID, ids[2])
	require.NoError(t, err)
	assert.Equal(t, float64(62), got.Fit.FitScore)

	_, err = m.GetResumeResult(ctx, job.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ProcessingStatus(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	job := newJob(t, m, "Support Lead")

	// Absent status reads as zero progress, not an error.
	status, err := m.GetProcessingStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, status.Total)

	require.NoError(t, m.SetProcessingStatus(ctx, job.ID, types.ProcessingStatus{Total: 50, Processed: 12}))
	status, err = m.GetProcessingStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, status.Total)
	assert.Equal(t, 12, status.Processed)
}

func TestMemory_SessionLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	job := newJob(t, m, "Platform Engineer")

	session := &types.InterviewSession{
		JobID:         job.ID,
		CandidateName: "Jordan Avery",
		JobRole:       job.JobRole,
		Status:        types.SessionStatusPending,
	}
	require.NoError(t, m.CreateSession(ctx, session))
	assert.NotEqual(t, uuid.Nil, session.ID)

	session.Status = types.SessionStatusCompleted
	session.Transcript = "AI: Hello\nUSER: Hi"
	require.NoError(t, m.UpdateSession(ctx, session))

	got, err := m.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, types.SessionStatusCompleted, got.Status)
	assert.NotEmpty(t, got.Transcript)

	sessions, err := m.ListSessionsByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	missing := &types.InterviewSession{ID: uuid.New()}
	assert.ErrorIs(t, m.UpdateSession(ctx, missing), ErrNotFound)
}

func TestMemory_DeleteJobCascades(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	job := newJob(t, m, "ML Engineer")
	other := newJob(t, m, "Designer")

	require.NoError(t, m.SaveSetup(ctx, &types.InterviewSetup{JobID: job.ID, RoleType: "tech", Level: "mid", Criteria: balancedCriteria()}))
	require.NoError(t, m.AddResumeResult(ctx, job.ID, types.ResumeAnalysisResult{ResumeID: uuid.New()}))
	require.NoError(t, m.SetProcessingStatus(ctx, job.ID, types.ProcessingStatus{Total: 1, Processed: 1}))
	require.NoError(t, m.CreateSession(ctx, &types.InterviewSession{JobID: job.ID, Status: types.SessionStatusPending}))

	otherSession := &types.InterviewSession{JobID: other.ID, Status: types.SessionStatusPending}
	require.NoError(t, m.CreateSession(ctx, otherSession))

	require.NoError(t, m.DeleteJob(ctx, job.ID))

	results, err := m.ListResumeResults(ctx, job.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	setups, err := m.ListSetups(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, setups)

	sessions, err := m.ListSessionsByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// Sibling jobs are untouched.
	kept, err := m.ListSessionsByJob(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
