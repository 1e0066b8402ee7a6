package questions

import "github.com/jonathan/interview-screener/internal/types"

// SelectInitialDifficulty maps a resume fit score onto the opening difficulty
// tier for an adaptive interview. Weak fits start easy so candidates can build
// momentum; strong fits are challenged immediately.
func SelectInitialDifficulty(fitScore int) types.Difficulty {
	switch {
	case fitScore <= 60:
		return types.DifficultyEasy
	case fitScore <= 70:
		return types.DifficultyMedium
	default:
		return types.DifficultyVeryHard
	}
}
