package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-screener/internal/types"
)

func TestSelectInitialDifficulty(t *testing.T) {
	tests := []struct {
		score    int
		expected types.Difficulty
	}{
		{score: 0, expected: types.DifficultyEasy},
		{score: 45, expected: types.DifficultyEasy},
		{score: 60, expected: types.DifficultyEasy},
		{score: 61, expected: types.DifficultyMedium},
		{score: 70, expected: types.DifficultyMedium},
		{score: 71, expected: types.DifficultyVeryHard},
		{score: 100, expected: types.DifficultyVeryHard},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SelectInitialDifficulty(tt.score), "score %d", tt.score)
	}
}

func TestSelectInitialDifficulty_PoolTier(t *testing.T) {
	// very_hard selections key into the hard pool tier.
	assert.Equal(t, types.DifficultyHard, SelectInitialDifficulty(85).PoolTier())
}
