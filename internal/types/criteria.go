// Package types defines the shared data model for screening and interviews.
package types

// DefaultQuestionCount is used when criteria omit number_of_questions.
const DefaultQuestionCount = 7

// Category identifies an evaluation category for interview questions.
type Category string

// Evaluation categories, in declaration order. Ordering matters: distribution
// reconciliation breaks ties by this order.
const (
	CategoryScreening     Category = "screening"
	CategoryDomain        Category = "domain"
	CategoryBehavioral    Category = "behavioral"
	CategoryCommunication Category = "communication"
)

// Categories returns all evaluation categories in declaration order.
func Categories() []Category {
	return []Category{CategoryScreening, CategoryDomain, CategoryBehavioral, CategoryCommunication}
}

// EvaluationCriteria holds the caller-supplied weighting for an interview setup.
// The percentages need not sum to 100 for distribution purposes; the API layer
// enforces the sum before persisting.
type EvaluationCriteria struct {
	ScreeningPercentage     int    `json:"screening_percentage" validate:"min=0,max=100"`
	DomainPercentage        int    `json:"domain_percentage" validate:"min=0,max=100"`
	BehavioralPercentage    int    `json:"behavioral_attitude_percentage" validate:"min=0,max=100"`
	CommunicationPercentage int    `json:"communication_percentage" validate:"min=0,max=100"`
	NumberOfQuestions       int    `json:"number_of_questions" validate:"min=0,max=50"`
	EstimatedDuration       int    `json:"estimated_duration"` // minutes
	QuestionTemplate        string `json:"question_template,omitempty"`
}

// Percentage returns the weight for a category.
func (c EvaluationCriteria) Percentage(cat Category) int {
	switch cat {
	case CategoryScreening:
		return c.ScreeningPercentage
	case CategoryDomain:
		return c.DomainPercentage
	case CategoryBehavioral:
		return c.BehavioralPercentage
	case CategoryCommunication:
		return c.CommunicationPercentage
	}
	return 0
}

// QuestionCount returns number_of_questions, defaulting when absent.
func (c EvaluationCriteria) QuestionCount() int {
	if c.NumberOfQuestions <= 0 {
		return DefaultQuestionCount
	}
	return c.NumberOfQuestions
}

// QuestionDistribution maps each category to its allocated question count.
type QuestionDistribution struct {
	Screening     int `json:"screening"`
	Domain        int `json:"domain"`
	Behavioral    int `json:"behavioral"`
	Communication int `json:"communication"`
}

// Count returns the allocation for a category.
func (d QuestionDistribution) Count(cat Category) int {
	switch cat {
	case CategoryScreening:
		return d.Screening
	case CategoryDomain:
		return d.Domain
	case CategoryBehavioral:
		return d.Behavioral
	case CategoryCommunication:
		return d.Communication
	}
	return 0
}

// Add adjusts the allocation for a category by delta.
func (d *QuestionDistribution) Add(cat Category, delta int) {
	switch cat {
	case CategoryScreening:
		d.Screening += delta
	case CategoryDomain:
		d.Domain += delta
	case CategoryBehavioral:
		d.Behavioral += delta
	case CategoryCommunication:
		d.Communication += delta
	}
}

// Total returns the sum of all allocations.
func (d QuestionDistribution) Total() int {
	return d.Screening + d.Domain + d.Behavioral + d.Communication
}
