package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-screener/internal/llm"
	"github.com/jonathan/interview-screener/internal/types"
)

// fakeClient returns scripted responses in call order.
type fakeClient struct {
	respond func(call int, messages []llm.Message) (string, error)
	calls   int
}

func (f *fakeClient) Complete(_ context.Context, messages []llm.Message, _ llm.Options) (string, error) {
	f.calls++
	return f.respond(f.calls, messages)
}

func (f *fakeClient) Close() error { return nil }

func questionArrayJSON(count int, category string) string {
	items := make([]map[string]any, count)
	for i := range items {
		items[i] = map[string]any{
			"id":         i + 1,
			"category":   category,
			"question":   fmt.Sprintf("Generated %s question %d?", category, i+1),
			"focus_area": "testing",
		}
	}
	raw, _ := json.Marshal(items)
	return string(raw)
}

func TestGeneratePool_AllTiersPopulated(t *testing.T) {
	client := &fakeClient{
		respond: func(_ int, messages []llm.Message) (string, error) {
			// The user prompt names the category; echo a matching array.
			for _, cat := range types.Categories() {
				if containsCategory(messages, cat) {
					return questionArrayJSON(2, string(cat)), nil
				}
			}
			return "", errors.New("unexpected prompt")
		},
	}
	gen := NewGenerator(client, nil)

	req := PoolRequest{
		Criteria: types.EvaluationCriteria{
			ScreeningPercentage: 50,
			DomainPercentage:    50,
			NumberOfQuestions:   4,
		},
		CandidateType:     "software engineering",
		CandidateLevel:    "mid",
		InitialDifficulty: types.DifficultyMedium,
	}

	pool, cfg, err := gen.GeneratePool(context.Background(), req)
	require.NoError(t, err)

	// Two active categories, three tiers each, one LLM call per pair.
	assert.Equal(t, 6, client.calls)
	assert.Equal(t, 12, pool.TotalQuestions())
	for _, cat := range []types.Category{types.CategoryScreening, types.CategoryDomain} {
		for _, tier := range types.PoolTiers() {
			qs := pool[cat][tier]
			require.Len(t, qs, 2, "category %s tier %s", cat, tier)
			for _, q := range qs {
				assert.Equal(t, cat, q.Category)
				assert.Equal(t, tier, q.Difficulty)
			}
		}
	}

	assert.Equal(t, types.DifficultyMedium, cfg.InitialDifficulty)
	assert.Equal(t, 4, cfg.TotalQuestions)
	assert.NotEmpty(t, cfg.StruggleMarkers)
	assert.NotEmpty(t, cfg.ExcelMarkers)
}

func TestGeneratePool_FailedTierFallsBack(t *testing.T) {
	client := &fakeClient{
		respond: func(_ int, _ []llm.Message) (string, error) {
			return "", errors.New("transport down")
		},
	}
	gen := NewGenerator(client, nil)

	req := PoolRequest{
		Criteria:          types.EvaluationCriteria{DomainPercentage: 100, NumberOfQuestions: 3},
		CandidateType:     "data science",
		CandidateLevel:    "senior",
		InitialDifficulty: types.DifficultyEasy,
	}

	pool, _, err := gen.GeneratePool(context.Background(), req)
	require.NoError(t, err)

	// Every tier is canned-filled despite total LLM failure.
	assert.Equal(t, 9, pool.TotalQuestions())
	for _, tier := range types.PoolTiers() {
		assert.Len(t, pool[types.CategoryDomain][tier], 3)
	}
}

func TestGeneratePool_ArrayBuriedInChatter(t *testing.T) {
	client := &fakeClient{
		respond: func(_ int, _ []llm.Message) (string, error) {
			return "Sure, here you go:\n" + questionArrayJSON(2, "screening") + "\nHope these help!", nil
		},
	}
	gen := NewGenerator(client, nil)

	req := PoolRequest{
		Criteria:          types.EvaluationCriteria{ScreeningPercentage: 100, NumberOfQuestions: 2},
		CandidateType:     "tech",
		CandidateLevel:    "entry",
		InitialDifficulty: types.DifficultyEasy,
	}

	pool, _, err := gen.GeneratePool(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6, pool.TotalQuestions())
}

func TestGeneratePool_Cancelled(t *testing.T) {
	client := &fakeClient{
		respond: func(_ int, _ []llm.Message) (string, error) {
			return questionArrayJSON(1, "screening"), nil
		},
	}
	gen := NewGenerator(client, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := gen.GeneratePool(ctx, PoolRequest{
		Criteria: types.EvaluationCriteria{ScreeningPercentage: 100, NumberOfQuestions: 1},
	})
	assert.Error(t, err)
}

func TestGenerateStandardized_ValidResponse(t *testing.T) {
	set := types.QuestionSet{
		Questions: []types.GeneratedQuestion{
			{ID: 1, Category: types.CategoryScreening, Question: "Background?"},
			{ID: 2, Category: types.CategoryDomain, Question: "Tech depth?"},
		},
		InterviewFocus:  "fundamentals",
		SuccessCriteria: "clarity",
	}
	raw, _ := json.Marshal(set)

	client := &fakeClient{
		respond: func(_ int, _ []llm.Message) (string, error) {
			return "```json\n" + string(raw) + "\n```", nil
		},
	}
	gen := NewGenerator(client, nil)

	got := gen.GenerateStandardized(context.Background(), StandardizedRequest{
		Criteria: types.EvaluationCriteria{
			ScreeningPercentage: 50,
			DomainPercentage:    50,
			NumberOfQuestions:   2,
			EstimatedDuration:   15,
		},
		CandidateType:  "tech",
		CandidateLevel: "mid",
	})

	assert.Equal(t, "fundamentals", got.InterviewFocus)
	assert.Equal(t, 2, got.TotalQuestions)
	assert.Equal(t, 15, got.EstimatedDuration)
}

func TestGenerateStandardized_CountMismatchFallsBack(t *testing.T) {
	set := types.QuestionSet{
		Questions: []types.GeneratedQuestion{
			{ID: 1, Category: types.CategoryScreening, Question: "Only one?"},
		},
	}
	raw, _ := json.Marshal(set)

	client := &fakeClient{
		respond: func(_ int, _ []llm.Message) (string, error) { return string(raw), nil },
	}
	gen := NewGenerator(client, nil)

	criteria := types.EvaluationCriteria{ScreeningPercentage: 50, DomainPercentage: 50, NumberOfQuestions: 4}
	got := gen.GenerateStandardized(context.Background(), StandardizedRequest{
		Criteria:       criteria,
		CandidateType:  "tech",
		CandidateLevel: "mid",
	})

	// LLM violated the count; only one attempt is made before canned fallback.
	assert.Equal(t, 1, client.calls)
	assert.Len(t, got.Questions, 4)
	assert.Equal(t, Distribute(criteria, 4), got.CategoryCounts())
}

func TestGenerateStandardized_DistributionMismatchFallsBack(t *testing.T) {
	// Right count, wrong categories.
	set := types.QuestionSet{
		Questions: []types.GeneratedQuestion{
			{ID: 1, Category: types.CategoryBehavioral, Question: "Q1?"},
			{ID: 2, Category: types.CategoryBehavioral, Question: "Q2?"},
		},
	}
	raw, _ := json.Marshal(set)

	client := &fakeClient{
		respond: func(_ int, _ []llm.Message) (string, error) { return string(raw), nil },
	}
	gen := NewGenerator(client, nil)

	criteria := types.EvaluationCriteria{ScreeningPercentage: 50, DomainPercentage: 50, NumberOfQuestions: 2}
	got := gen.GenerateStandardized(context.Background(), StandardizedRequest{
		Criteria:       criteria,
		CandidateType:  "tech",
		CandidateLevel: "mid",
	})

	assert.Equal(t, Distribute(criteria, 2), got.CategoryCounts())
}

func TestGenerateStandardized_TransportErrorFallsBack(t *testing.T) {
	client := &fakeClient{
		respond: func(_ int, _ []llm.Message) (string, error) {
			return "", errors.New("transport down")
		},
	}
	gen := NewGenerator(client, nil)

	got := gen.GenerateStandardized(context.Background(), StandardizedRequest{
		Criteria:       types.EvaluationCriteria{DomainPercentage: 100, NumberOfQuestions: 5},
		CandidateType:  "tech",
		CandidateLevel: "senior",
	})

	assert.Len(t, got.Questions, 5)
	assert.Equal(t, 10, got.EstimatedDuration)
}

func containsCategory(messages []llm.Message, cat types.Category) bool {
	for _, m := range messages {
		if m.Role == "user" && strings.Contains(m.Content, fmt.Sprintf("%s interview questions", cat)) {
			return true
		}
	}
	return false
}
