package types

// RubricQuestionScore is one per-question judgment returned by the rubric
// LLM pass: a 0-5 score plus rationale.
type RubricQuestionScore struct {
	Question         string  `json:"question"`
	Answer           string  `json:"answer,omitempty"`
	Score            float64 `json:"score"`
	Rationale        string  `json:"rationale"`
	IsDomainQuestion bool    `json:"is_domain_question"`
}

// RubricQuestionScores wraps the per-question list inside the rubric response.
type RubricQuestionScores struct {
	Questions []RubricQuestionScore `json:"questions"`
}

// RubricResponse is the decoded interview-rubric LLM response. Optional
// narrative fields are backfilled by the scorer (see scoring package); this
// struct carries whatever the model returned.
type RubricResponse struct {
	QuestionScores RubricQuestionScores `json:"question_scores"`

	CommunicationScore float64 `json:"communication_score"`

	DomainKnowledgeInsights      string                       `json:"domain_knowledge_insights"`
	TechnicalCompetencyAnalysis  *TechnicalCompetencyAnalysis `json:"technical_competency_analysis"`
	ProblemSolvingApproach       string                       `json:"problem_solving_approach"`
	RelevantExperienceAssessment string                       `json:"relevant_experience_assessment"`
	KnowledgeGaps                []string                     `json:"knowledge_gaps"`
	InterviewPerformanceMetrics  *InterviewPerformanceMetrics `json:"interview_performance_metrics"`
	AreasOfImprovement           []string                     `json:"areas_of_improvement"`
	SystemRecommendation         string                       `json:"system_recommendation"`

	ConfidenceLevel  string `json:"confidence_level"`
	CheatingDetected bool   `json:"cheating_detected"`
	SpeechPattern    string `json:"speech_pattern"`
}

// TechnicalCompetencyAnalysis summarizes demonstrated technical depth.
type TechnicalCompetencyAnalysis struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	DepthRating string   `json:"depth_rating"`
}

// InterviewPerformanceMetrics holds qualitative performance buckets.
type InterviewPerformanceMetrics struct {
	ResponseQuality      string `json:"response_quality"`
	TechnicalAccuracy    string `json:"technical_accuracy"`
	ExamplesProvided     string `json:"examples_provided"`
	ClarityOfExplanation string `json:"clarity_of_explanation"`
}

// BehavioralAnalysis groups the behavioral observations kept separate from
// the main analysis for backward compatibility with stored records.
type BehavioralAnalysis struct {
	ConfidenceLevel  string `json:"confidence_level"`
	CheatingDetected bool   `json:"cheating_detected"`
	SpeechPattern    string `json:"speech_pattern"`
}

// ScoredQuestion is one question after the deterministic weighting pass.
type ScoredQuestion struct {
	Question         string     `json:"question"`
	Score            float64    `json:"score"` // rubric score 0-5
	Rationale        string     `json:"rationale,omitempty"`
	Difficulty       Difficulty `json:"difficulty"`
	Multiplier       float64    `json:"multiplier"`
	WeightedScore    float64    `json:"weighted_score"`
	MaxScore         float64    `json:"max_score"`
	IsDomainQuestion bool       `json:"is_domain_question"`
	IsFollowup       bool       `json:"is_followup"`

	// Excluded questions contribute to neither raw nor max totals.
	Excluded        bool   `json:"excluded,omitempty"`
	ExclusionReason string `json:"exclusion_reason,omitempty"`
	// Synthetic entries are abandoned-interview placeholders that contribute
	// to max totals only.
	Synthetic bool `json:"synthetic,omitempty"`
}

// ScoreAggregate holds the normalized score totals for one interview.
type ScoreAggregate struct {
	RawScore              float64 `json:"raw_score"`
	MaxScore              float64 `json:"max_score"`
	NormalizedScore       float64 `json:"normalized_score"`
	RawDomainScore        float64 `json:"raw_domain_score"`
	MaxDomainScore        float64 `json:"max_domain_score"`
	NormalizedDomainScore float64 `json:"normalized_domain_score"`
	CommunicationScore    float64 `json:"communication_score"`
	OverallScore          int     `json:"overall_score"`
}

// InterviewAnalysis is the full analysis record persisted for an interview.
type InterviewAnalysis struct {
	Scores          ScoreAggregate   `json:"scores"`
	ScoredQuestions []ScoredQuestion `json:"scored_questions"`

	DomainKnowledgeInsights      string                      `json:"domain_knowledge_insights"`
	TechnicalCompetencyAnalysis  TechnicalCompetencyAnalysis `json:"technical_competency_analysis"`
	ProblemSolvingApproach       string                      `json:"problem_solving_approach"`
	RelevantExperienceAssessment string                      `json:"relevant_experience_assessment"`
	KnowledgeGaps                []string                    `json:"knowledge_gaps"`
	InterviewPerformanceMetrics  InterviewPerformanceMetrics `json:"interview_performance_metrics"`
	AreasOfImprovement           []string                    `json:"areas_of_improvement"`
	SystemRecommendation         string                      `json:"system_recommendation"`
	BehavioralAnalysis           BehavioralAnalysis          `json:"behavioral_analysis"`

	// Best-effort telemetry, never a scoring input.
	DifficultyProgression []DifficultyTransition `json:"difficulty_progression,omitempty"`
}
