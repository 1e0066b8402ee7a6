package types

// Difficulty is a question difficulty tier. Pools are keyed by the three
// storage tiers; very_hard is the selection-time alias of hard produced by the
// fit-score mapping.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyVeryHard Difficulty = "very_hard"
)

// PoolTiers returns the difficulty tiers a question pool is generated at.
func PoolTiers() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Multiplier returns the scoring weight for a difficulty tier. Unknown tiers
// weigh the same as medium, matching the scorer's default.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 1.0
	case DifficultyMedium:
		return 1.2
	case DifficultyHard, DifficultyVeryHard:
		return 1.5
	}
	return 1.2
}

// PoolTier maps a selection-time difficulty onto the tier used as a pool key.
func (d Difficulty) PoolTier() Difficulty {
	if d == DifficultyVeryHard {
		return DifficultyHard
	}
	return d
}
