package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-screener/internal/types"
)

func TestGenerateFallback_MatchesDistribution(t *testing.T) {
	dist := types.QuestionDistribution{Screening: 2, Domain: 3, Behavioral: 1, Communication: 1}

	set := GenerateFallback("software engineering", "mid", dist)

	assert.Equal(t, dist, set.CategoryCounts())
	assert.Equal(t, 7, set.TotalQuestions)
	assert.Equal(t, 14, set.EstimatedDuration)

	// IDs are sequential from 1.
	for i, q := range set.Questions {
		assert.Equal(t, i+1, q.ID)
		assert.Equal(t, "mid", q.ExpectedDepth)
	}
}

func TestGenerateFallback_ZeroCategoriesSkipped(t *testing.T) {
	dist := types.QuestionDistribution{Domain: 7}

	set := GenerateFallback("data science", "senior", dist)

	assert.Len(t, set.Questions, 7)
	for _, q := range set.Questions {
		assert.Equal(t, types.CategoryDomain, q.Category)
	}
	assert.Contains(t, set.InterviewFocus, "data science expertise")
	assert.NotContains(t, set.InterviewFocus, "background verification")
}

func TestGenerateFallback_ExhaustedBankSynthesizes(t *testing.T) {
	// The communication bank has 6 canned questions; asking for 8 forces
	// synthesized filler for the overflow.
	dist := types.QuestionDistribution{Communication: 8}

	set := GenerateFallback("tech", "entry", dist)

	assert.Len(t, set.Questions, 8)
	assert.Contains(t, set.Questions[6].Question, "communication")
	assert.Contains(t, set.Questions[7].Question, "elaborate on your experience")
}

func TestFallbackTierQuestions(t *testing.T) {
	qs := FallbackTierQuestions(types.CategoryDomain, types.DifficultyHard, 3, "backend engineering", "senior", 10)

	assert.Len(t, qs, 3)
	for i, q := range qs {
		assert.Equal(t, 10+i, q.ID)
		assert.Equal(t, types.CategoryDomain, q.Category)
		assert.Equal(t, types.DifficultyHard, q.Difficulty)
		assert.Equal(t, "senior", q.ExpectedDepth)
	}
	assert.Contains(t, qs[0].Question, "backend engineering")
}
