package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-screener/internal/analysis"
	"github.com/jonathan/interview-screener/internal/llm"
	"github.com/jonathan/interview-screener/internal/types"
)

// routingClient answers classification, name, and fit prompts with canned
// JSON, failing fit analysis for resumes whose text carries the poison marker.
type routingClient struct {
	mu         sync.Mutex
	concurrent int
	peak       int
}

func (c *routingClient) Complete(ctx context.Context, messages []llm.Message, _ llm.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	c.concurrent++
	if c.concurrent > c.peak {
		c.peak = c.concurrent
	}
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.concurrent--
		c.mu.Unlock()
	}()

	var user string
	for _, m := range messages {
		if m.Role == "user" {
			user = m.Content
		}
	}

	switch {
	case strings.Contains(user, "Extract the candidate's full name"):
		return "Taylor Reed", nil
	case strings.Contains(user, "Classify the following resume"):
		return `{"category": "tech", "level": "mid", "confidence": 0.9}`, nil
	case strings.Contains(user, "RESUME CLASSIFICATION"):
		if strings.Contains(user, "poison") {
			return "", errors.New("simulated transport failure")
		}
		return `{"fit_score": 77, "matching_skills": ["Go"], "missing_skills": [], "experience_score": 70, "recommendation": "GOOD_FIT", "detailed_feedback": "fine"}`, nil
	}
	return "", errors.New("unexpected prompt")
}

func (c *routingClient) Close() error { return nil }

func makeBatch(n int, poisoned int) []Resume {
	resumes := make([]Resume, n)
	for i := range resumes {
		text := fmt.Sprintf("Resume body %d with Go experience.", i+1)
		if i == poisoned {
			text += " poison"
		}
		resumes[i] = Resume{
			ID:       uuid.New(),
			Filename: fmt.Sprintf("candidate_%d_resume.pdf", i+1),
			Text:     text,
		}
	}
	return resumes
}

func newProcessor(client llm.Client, maxConcurrent int64) *Processor {
	return NewProcessor(
		analysis.NewResumeAnalyzer(client, nil),
		analysis.NewNameExtractor(client, nil),
		maxConcurrent,
		nil,
	)
}

func TestProcessBatch_PartialFailureIsolation(t *testing.T) {
	// Resume #3 fails; the other nine succeed and exactly one failure is
	// reported.
	p := newProcessor(&routingClient{}, 4)

	results, failed := p.ProcessBatch(context.Background(), makeBatch(10, 2), types.JobAnalysis{}, "desc")

	require.Len(t, results, 10)
	assert.Equal(t, 1, failed)

	for i, res := range results {
		if i == 2 {
			assert.NotEmpty(t, res.Error)
			assert.Equal(t, "MANUAL_REVIEW", res.Fit.Recommendation)
			continue
		}
		assert.Empty(t, res.Error, "resume %d", i)
		assert.Equal(t, "GOOD_FIT", res.Fit.Recommendation)
		assert.Equal(t, "Taylor Reed", res.CandidateName)
	}
}

func TestProcessBatch_ResultsKeepInputOrder(t *testing.T) {
	p := newProcessor(&routingClient{}, 8)

	resumes := makeBatch(6, -1)
	results, failed := p.ProcessBatch(context.Background(), resumes, types.JobAnalysis{}, "desc")

	require.Len(t, results, 6)
	assert.Zero(t, failed)
	for i, res := range results {
		assert.Equal(t, resumes[i].ID, res.ResumeID)
		assert.Equal(t, resumes[i].Filename, res.Filename)
	}
}

func TestProcessBatch_Cancelled(t *testing.T) {
	p := newProcessor(&routingClient{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, failed := p.ProcessBatch(ctx, makeBatch(3, -1), types.JobAnalysis{}, "desc")

	require.Len(t, results, 3)
	assert.Equal(t, 3, failed)
}

func TestProcessBatch_Empty(t *testing.T) {
	p := newProcessor(&routingClient{}, 4)

	results, failed := p.ProcessBatch(context.Background(), nil, types.JobAnalysis{}, "desc")

	assert.Empty(t, results)
	assert.Zero(t, failed)
}
