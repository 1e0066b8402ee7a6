package types

// GeneratedQuestion is one interview question produced by the generator.
// Immutable once produced.
type GeneratedQuestion struct {
	ID            int        `json:"id"`
	Category      Category   `json:"category"`
	Question      string     `json:"question"`
	FocusArea     string     `json:"focus_area"`
	ExpectedDepth string     `json:"expected_depth"`
	Difficulty    Difficulty `json:"difficulty"`
}

// QuestionPool holds the multi-tier question bank for an adaptive interview:
// category -> difficulty tier -> ordered questions. Created once per
// interview-link request and never mutated afterwards.
type QuestionPool map[Category]map[Difficulty][]GeneratedQuestion

// Flatten returns every question in the pool in category, then tier, order.
func (p QuestionPool) Flatten() []GeneratedQuestion {
	var all []GeneratedQuestion
	for _, cat := range Categories() {
		tiers, ok := p[cat]
		if !ok {
			continue
		}
		for _, tier := range PoolTiers() {
			all = append(all, tiers[tier]...)
		}
	}
	return all
}

// TotalQuestions returns the number of questions across all tiers.
func (p QuestionPool) TotalQuestions() int {
	total := 0
	for _, tiers := range p {
		for _, qs := range tiers {
			total += len(qs)
		}
	}
	return total
}

// AdaptiveConfig captures everything the live interview conductor needs to
// drive an adaptive interview from a pre-generated pool.
type AdaptiveConfig struct {
	InitialDifficulty Difficulty           `json:"initial_difficulty"`
	Distribution      QuestionDistribution `json:"distribution"`
	TotalQuestions    int                  `json:"total_questions"`

	// Phrase markers the conductor matches against candidate answers to decide
	// whether to step difficulty down or up for the next question.
	StruggleMarkers []string `json:"struggle_markers"`
	ExcelMarkers    []string `json:"excel_markers"`
}

// QuestionSet is the non-adaptive (standardized) generation result: a single
// fixed-difficulty set of questions plus interview framing.
type QuestionSet struct {
	Questions         []GeneratedQuestion `json:"questions"`
	InterviewFocus    string              `json:"interview_focus"`
	SuccessCriteria   string              `json:"success_criteria"`
	TotalQuestions    int                 `json:"total_questions"`
	EstimatedDuration int                 `json:"estimated_duration"`
}

// CategoryCounts tallies questions per category.
func (s QuestionSet) CategoryCounts() QuestionDistribution {
	var dist QuestionDistribution
	for _, q := range s.Questions {
		dist.Add(q.Category, 1)
	}
	return dist
}
