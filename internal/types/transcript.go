package types

// QAPair is one question/answer exchange extracted from a transcript.
// Ephemeral: produced and consumed within a single scoring pass.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`

	IsGreeting bool `json:"is_greeting"`
	IsFollowup bool `json:"is_followup"`
	IsInitial  bool `json:"is_initial"`
	IsDomain   bool `json:"is_domain"`

	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Score         float64    `json:"score"` // rubric score 0-5
	WeightedScore float64    `json:"weighted_score"`
}

// DifficultyTransition is best-effort telemetry extracted from conductor
// annotations like "[Moving to hard level]" in a transcript. Analytics only;
// never a scoring input.
type DifficultyTransition struct {
	Difficulty Difficulty `json:"difficulty"`
	Position   int        `json:"position"` // line index in the transcript
}
